package router

import (
	"signalboard/internal/handler/admin"
	"signalboard/internal/handler/backtest"
	"signalboard/internal/handler/export"
	"signalboard/internal/handler/news"
	"signalboard/internal/handler/ping"
	"signalboard/internal/handler/signal"
	"signalboard/internal/handler/ticker"
	"signalboard/internal/handler/trade"
	"signalboard/internal/handler/user"
	"signalboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ApiRouter struct {
	userHandler     *user.UserHandler
	signalHandler   *signal.SignalHandler
	tradeHandler    *trade.TradeHandler
	backtestHandler *backtest.BacktestHandler
	newsHandler     *news.NewsHandler
	adminHandler    *admin.AdminHandler
	tickerHandler   *ticker.TickerHandler
	exportHandler   *export.ExportHandler
}

func NewApiRouter(
	userHandler *user.UserHandler,
	signalHandler *signal.SignalHandler,
	tradeHandler *trade.TradeHandler,
	backtestHandler *backtest.BacktestHandler,
	newsHandler *news.NewsHandler,
	adminHandler *admin.AdminHandler,
	tickerHandler *ticker.TickerHandler,
	exportHandler *export.ExportHandler,
) *ApiRouter {
	return &ApiRouter{
		userHandler:     userHandler,
		signalHandler:   signalHandler,
		tradeHandler:    tradeHandler,
		backtestHandler: backtestHandler,
		newsHandler:     newsHandler,
		adminHandler:    adminHandler,
		tickerHandler:   tickerHandler,
		exportHandler:   exportHandler,
	}
}

func (api *ApiRouter) Load(g *gin.Engine) {
	g.Use(middleware.RequestId(), middleware.Options(), middleware.Secure(), middleware.Logger)

	g.GET("/ping", ping.Ping())

	base := g.Group("/api/v1")

	auth := base.Group("/auth", middleware.AntiDuplicateMiddleware())
	{
		auth.POST("/register", api.userHandler.UserRegister())
		auth.POST("/login", api.userHandler.UserLogin())
		auth.POST("/captcha", api.userHandler.CaptchaGen())
	}

	u := base.Group("/user", middleware.AuthToken())
	{
		u.GET("/info", api.userHandler.UserGetInfo())
		u.GET("/balance", api.userHandler.UserGetBalance())
		u.POST("/capital", api.userHandler.CapitalUpdate())
		u.GET("/refresh", api.userHandler.UserRefresh())
		u.GET("/status", api.userHandler.UserAuthStatus())
		u.GET("/logout", api.userHandler.UserLogout())
	}

	sg := base.Group("/signal", middleware.AuthToken())
	{
		// AI分析是重请求，加防抖
		sg.POST("/analyze", middleware.AntiDuplicateMiddleware(), api.signalHandler.Analyze())
		sg.GET("/list", api.signalHandler.SignalGetList())
	}

	tr := base.Group("/trade", middleware.AuthToken())
	{
		tr.POST("/settle", api.tradeHandler.Settle())
		tr.GET("/list", api.tradeHandler.TradeGetList())
		tr.GET("/stats", api.tradeHandler.LiveStats())
		tr.GET("/report", api.tradeHandler.Report())
	}

	bt := base.Group("/backtest", middleware.AuthToken())
	{
		bt.POST("/run", middleware.AntiDuplicateMiddleware(), api.backtestHandler.Run())
	}
	base.GET("/review", middleware.AuthToken(), api.backtestHandler.Review())

	n := base.Group("/news", middleware.AuthToken(), middleware.NoCache())
	{
		n.GET("/list", api.newsHandler.NewsGetList())
		n.GET("/analysis", api.newsHandler.NewsGetAnalysis())
	}

	// websocket路由不挂防抖
	base.GET("/ticker/ws", api.tickerHandler.ServeWS)

	base.GET("/export", middleware.AuthToken(), api.exportHandler.Export())
	base.POST("/import", middleware.AuthToken(), api.exportHandler.Import())

	ad := base.Group("/admin", middleware.AuthToken(), middleware.AdminRequired())
	{
		ad.GET("/users", api.adminHandler.UserGetList())
		ad.GET("/activity/ws", api.adminHandler.ServeActivityWS)
	}
}
