package main

import (
	"context"
	"log"

	"signalboard/conf"
	"signalboard/internal/model/entity"
	"signalboard/pkg/cache"
	"signalboard/pkg/db"
	"signalboard/pkg/logger"
)

func main() {
	// 加载配置文件
	if err := conf.LoadConfig("conf/config.yaml"); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(conf.AppConfig.Log)
	defer logger.Sync()

	// 初始化redis
	cache.InitRedis(conf.AppConfig.Redis)
	defer cache.CloseRedis()

	// 初始化数据库
	datasource := db.Init(db.Config{
		User:      conf.AppConfig.Username,
		Password:  conf.AppConfig.Db.Password,
		Host:      conf.AppConfig.Host,
		Port:      conf.AppConfig.Port,
		DBName:    conf.AppConfig.DbName,
		ParseTime: true,
	})
	if err := datasource.AutoMigrate(&entity.User{}, &entity.TradeSignal{}, &entity.Trade{}); err != nil {
		logger.Fatalf("数据库迁移失败: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := NewServer(&conf.AppConfig)
	srv.RegisterOnShutdown(cancel)
	srv.Run(InitRouter(ctx, datasource))
}
