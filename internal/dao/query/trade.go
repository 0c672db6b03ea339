package query

import (
	"context"
	"signalboard/internal/dao"
	"signalboard/internal/model/entity"
	"signalboard/pkg/errors"
	"signalboard/pkg/errors/ecode"

	"gorm.io/gorm"
)

var _ dao.TradeDao = (*tradeDao)(nil)

type tradeDao struct {
	ds *gorm.DB
}

func NewTradeDao(ds *gorm.DB) *tradeDao {
	return &tradeDao{
		ds: ds,
	}
}

// TradeSettle 信号状态、资金、流水必须一起成功或一起失败，避免账实分离。
// 状态翻转带PENDING条件，同一信号并发结算只有一个能通过；
// 资金用增量更新，不同信号并发结算不会互相覆盖。
func (t *tradeDao) TradeSettle(ctx context.Context, trade *entity.Trade) (float64, error) {
	var newCapital float64
	err := t.ds.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.TradeSignal{}).
			Where("id = ? AND user_id = ? AND status = ?", trade.SignalId, trade.UserId, "PENDING").
			Update("status", "CLOSED")
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.WithCode(ecode.SettleErr, "该信号已结算")
		}
		if err := tx.Model(&entity.User{}).
			Where("id = ?", trade.UserId).
			Update("capital", gorm.Expr("capital + ?", trade.Amount)).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.User{}).
			Where("id = ?", trade.UserId).
			Select("capital").
			Scan(&newCapital).Error; err != nil {
			return err
		}
		trade.BalanceAfter = newCapital
		return tx.Create(trade).Error
	})
	return newCapital, err
}

func (t *tradeDao) TradeListByUser(ctx context.Context, userId int64, limit, page int) ([]entity.Trade, error) {
	var trades []entity.Trade
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	err := t.ds.WithContext(ctx).Model(&entity.Trade{}).
		Where("user_id = ?", userId).
		Order("date desc").
		Limit(limit).Offset(offset).
		Find(&trades).Error
	return trades, err
}

func (t *tradeDao) TradeListAll(ctx context.Context, userId int64) ([]entity.Trade, error) {
	var trades []entity.Trade
	err := t.ds.WithContext(ctx).Model(&entity.Trade{}).
		Where("user_id = ?", userId).
		Order("date asc").
		Find(&trades).Error
	return trades, err
}

func (t *tradeDao) TradeBulkCreate(ctx context.Context, trades []entity.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	return t.ds.WithContext(ctx).Create(&trades).Error
}
