package news

import (
	"signalboard/internal/service"
	"signalboard/pkg/response"

	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	service service.NewsService
}

func NewNewsHandler(service service.NewsService) *NewsHandler {
	return &NewsHandler{service: service}
}

// @Summary		经济日历
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.NewsListRes}
// @Router			/api/v1/news/list [get]
func (handler *NewsHandler) NewsGetList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		response.JSON(ctx, nil, handler.service.Snapshot())
	}
}

// @Summary		当日新闻的情绪分析
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.NewsAnalysis}
// @Router			/api/v1/news/analysis [get]
func (handler *NewsHandler) NewsGetAnalysis() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		snap := handler.service.Snapshot()
		response.JSON(ctx, nil, snap.Analysis)
	}
}
