package signal

import (
	"signalboard/internal/consts"
	"signalboard/internal/model"
	"signalboard/internal/service"
	"signalboard/pkg/errors"
	"signalboard/pkg/errors/ecode"
	"signalboard/pkg/response"
	"signalboard/pkg/validator"

	"github.com/gin-gonic/gin"
)

type SignalHandler struct {
	service service.SignalService
}

func NewSignalHandler(service service.SignalService) *SignalHandler {
	return &SignalHandler{service: service}
}

// @Summary		发起一次AI市场分析
// @Produce		json
// @Param			Authorization	header		string				false	"Bearer 用户令牌"
// @Param			object			body		model.AnalyzeReq	true	"分析参数"
// @Success		200				{object}	response.ApiResponse{data=entity.TradeSignal}
// @Router			/api/v1/signal/analyze [post]
func (handler *SignalHandler) Analyze() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.AnalyzeReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "请求参数错误"), nil)
			return
		}
		if err := validator.Struct(req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "%s", err.Error()), nil)
			return
		}
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.service.Analyze(ctx, userId, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		信号历史列表
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Param			limit			query		int		false	"数量，默认10"
// @Success		200				{object}	response.ApiResponse{data=model.SignalListRes}
// @Router			/api/v1/signal/list [get]
func (handler *SignalHandler) SignalGetList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.SignalListReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "请求参数错误"), nil)
			return
		}
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.service.SignalList(ctx, userId, req)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.DatabaseErr, "信号查询失败"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}
