package backtest

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

type BacktestHandler struct {
	service service.BacktestService
	review  service.ReviewService
}

func NewBacktestHandler(service service.BacktestService, review service.ReviewService) *BacktestHandler {
	return &BacktestHandler{service: service, review: review}
}

// @Summary		运行一次历史回测模拟
// @Produce		json
// @Param			Authorization	header		string				false	"Bearer 用户令牌"
// @Param			object			body		model.BacktestReq	true	"回测参数"
// @Success		200				{object}	response.ApiResponse{data=model.BacktestResult}
// @Router			/api/v1/backtest/run [post]
func (handler *BacktestHandler) Run() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.BacktestReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "请求参数错误"), nil)
			return
		}
		if err := validator.Struct(req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "%s", err.Error()), nil)
			return
		}
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.service.Run(ctx, userId, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		绩效审查
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.PerformanceReview}
// @Router			/api/v1/review [get]
func (handler *BacktestHandler) Review() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.review.Review(ctx, userId)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}
