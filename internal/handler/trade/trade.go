package trade

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

type TradeHandler struct {
	ledger service.LedgerService
}

func NewTradeHandler(ledger service.LedgerService) *TradeHandler {
	return &TradeHandler{ledger: ledger}
}

// @Summary		结算一条信号
// @Produce		json
// @Param			Authorization	header		string			false	"Bearer 用户令牌"
// @Param			object			body		model.SettleReq	true	"结算参数"
// @Success		200				{object}	response.ApiResponse{data=model.SettleRes}
// @Router			/api/v1/trade/settle [post]
func (handler *TradeHandler) Settle() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.SettleReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "请求参数错误"), nil)
			return
		}
		if err := validator.Struct(req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "%s", err.Error()), nil)
			return
		}
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.ledger.Settle(ctx, userId, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		交易流水列表
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.TradeListRes}
// @Router			/api/v1/trade/list [get]
func (handler *TradeHandler) TradeGetList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.TradeListReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "请求参数错误"), nil)
			return
		}
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.ledger.TradeList(ctx, userId, req)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.DatabaseErr, "流水查询失败"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		周报聚合
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.TradeReport}
// @Router			/api/v1/trade/report [get]
func (handler *TradeHandler) Report() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.ledger.Report(ctx, userId)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.DatabaseErr, "周报查询失败"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		实盘统计
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.LiveStats}
// @Router			/api/v1/trade/stats [get]
func (handler *TradeHandler) LiveStats() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.ledger.LiveStats(ctx, userId)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.DatabaseErr, "统计查询失败"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}
