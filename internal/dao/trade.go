package dao

import (
	"context"
	"signalboard/internal/model/entity"
)

type TradeDao interface {
	// 结算：信号置CLOSED、资金增量更新、写入流水，同一事务，返回更新后的余额
	TradeSettle(ctx context.Context, trade *entity.Trade) (float64, error)
	// 按date倒序的分页列表
	TradeListByUser(ctx context.Context, userId int64, limit, page int) ([]entity.Trade, error)
	// 全量流水，按date升序，用于统计和重放
	TradeListAll(ctx context.Context, userId int64) ([]entity.Trade, error)
	// 导入备份时批量写入
	TradeBulkCreate(ctx context.Context, trades []entity.Trade) error
}
