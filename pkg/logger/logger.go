package logger

import (
	"os"
	"signalboard/conf"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var lg *zap.Logger

// InitLogger 初始化日志，文件滚动用lumberjack
func InitLogger(cfg conf.LogConfig) {
	writeSyncer := getLogWriter(cfg)
	encoder := getEncoder(cfg.TimeFormat)

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, writeSyncer, level),
	}
	// 开发时同时输出到控制台
	if cfg.Console {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level))
	}

	lg = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
}

func getEncoder(timeFormat string) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	if timeFormat == "" {
		timeFormat = "2006-01-02 15:04:05.000"
	}
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(timeFormat)
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeDuration = zapcore.SecondsDurationEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func getLogWriter(cfg conf.LogConfig) zapcore.WriteSyncer {
	lumberJackLogger := &lumberjack.Logger{
		Filename:   cfg.FileName,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		LocalTime:  cfg.LocalTime,
	}
	return zapcore.AddSync(lumberJackLogger)
}

func l() *zap.Logger {
	if lg == nil {
		// 未初始化时退化为标准输出，避免测试里崩溃
		lg, _ = zap.NewDevelopment(zap.AddCallerSkip(1))
	}
	return lg
}

// Pair 构造一个结构化日志字段
func Pair(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}

func Debug(msg string, fields ...zap.Field) { l().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { l().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { l().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { l().Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { l().Fatal(msg, fields...) }

func Debugf(format string, args ...interface{}) { l().Sugar().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { l().Sugar().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { l().Sugar().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { l().Sugar().Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { l().Sugar().Fatalf(format, args...) }

// Sync 程序退出前刷新缓冲
func Sync() {
	if lg != nil {
		_ = lg.Sync()
	}
}
