package main

import (
	"context"
	"time"

	"signalboard/conf"
	"signalboard/internal/dao/query"
	adminh "signalboard/internal/handler/admin"
	backtesth "signalboard/internal/handler/backtest"
	exporth "signalboard/internal/handler/export"
	newsh "signalboard/internal/handler/news"
	signalh "signalboard/internal/handler/signal"
	tickerh "signalboard/internal/handler/ticker"
	tradeh "signalboard/internal/handler/trade"
	userh "signalboard/internal/handler/user"
	"signalboard/internal/router"
	"signalboard/internal/service"
	"signalboard/pkg/cache"
	"signalboard/pkg/kafka"
	"signalboard/pkg/llm"
	"signalboard/pkg/lookup"
	"signalboard/pkg/recorder"

	"gorm.io/gorm"
)

// InitRouter 组装依赖并返回路由。后台协程（行情、新闻刷新）也在这里启动
func InitRouter(ctx context.Context, db *gorm.DB) Router {
	appCfg := conf.AppConfig

	ud := query.NewUserDao(db)
	sd := query.NewSignalDao(db)
	td := query.NewTradeDao(db)

	rdb := cache.GetRedisClient()

	inferencer := llm.NewGeminiClient(appCfg.Llm.ApiKey, appCfg.Llm.BaseURL,
		time.Duration(appCfg.Llm.Timeout)*time.Second)
	lk := lookup.NewClient(appCfg.Lookup.URL, time.Duration(appCfg.Lookup.Timeout)*time.Second)

	producer := kafka.NewKafkaProducer(appCfg.Kafka.Broker, appCfg.Kafka.ActivityTopic)
	consumer := kafka.NewKafkaConsumer(appCfg.Kafka.Broker)

	auditPath := appCfg.Ledger.AuditLogPath
	if auditPath == "" {
		auditPath = "logs/ledger-audit.json"
	}
	auditRecorder := recorder.NewJSONFileRecorder(auditPath)

	us := service.NewUserService(ud, lk, producer)
	ledger := service.NewLedgerService(ud, sd, td, auditRecorder, producer)
	ss := service.NewSignalService(sd, ud, inferencer)

	btStore := service.NewRedisBacktestStore(rdb)
	bs := service.NewBacktestService(inferencer, btStore)
	rs := service.NewReviewService(ledger, btStore, service.NewRedisReviewCache(rdb), inferencer)

	ns := service.NewNewsService(inferencer)
	ns.Start(ctx)

	ts := service.NewTickerService()
	ts.Start(ctx)

	as := service.NewAdminService(ud)
	es := service.NewExportService(ud, sd, td, btStore)

	return router.NewApiRouter(
		userh.NewUserHandler(us, ledger),
		signalh.NewSignalHandler(ss),
		tradeh.NewTradeHandler(ledger),
		backtesth.NewBacktestHandler(bs, rs),
		newsh.NewNewsHandler(ns),
		adminh.NewAdminHandler(as, consumer),
		tickerh.NewTickerHandler(ts),
		exporth.NewExportHandler(es),
	)
}
