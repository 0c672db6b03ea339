package export

import (
	"io"

	"signalboard/internal/consts"
	"signalboard/internal/service"
	"signalboard/pkg/errors"
	"signalboard/pkg/errors/ecode"
	"signalboard/pkg/response"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	service service.ExportService
}

func NewExportHandler(service service.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// @Summary		导出全量备份
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.ExportDocument}
// @Router			/api/v1/export [get]
func (handler *ExportHandler) Export() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId := ctx.GetInt64(consts.UserID)
		doc, err := handler.service.Export(ctx, userId)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.DatabaseErr, "导出失败"), nil)
			return
		}
		response.JSON(ctx, nil, doc)
	}
}

// @Summary		导入备份还原数据
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.ImportRes}
// @Router			/api/v1/import [post]
func (handler *ExportHandler) Import() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raw, err := io.ReadAll(ctx.Request.Body)
		if err != nil || len(raw) == 0 {
			response.JSON(ctx, errors.WithCode(ecode.ImportErr, "备份内容为空"), nil)
			return
		}
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.service.Import(ctx, userId, raw)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}
