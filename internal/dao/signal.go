package dao

import (
	"context"
	"signalboard/internal/model/entity"
)

type SignalDao interface {
	// 创建信号，创建后不可变
	SignalCreate(ctx context.Context, signal *entity.TradeSignal) error
	// 按时间倒序列出用户的信号
	SignalListByUser(ctx context.Context, userId int64, limit int) ([]entity.TradeSignal, error)
	// 获取单条信号，校验归属
	SignalGetById(ctx context.Context, userId, signalId int64) (entity.TradeSignal, error)
	// 导入备份时批量写入
	SignalBulkCreate(ctx context.Context, signals []entity.TradeSignal) error
}
