package query

import (
	"context"
	"signalboard/internal/dao"
	"signalboard/internal/model/entity"

	"gorm.io/gorm"
)

var _ dao.SignalDao = (*signalDao)(nil)

type signalDao struct {
	ds *gorm.DB
}

func NewSignalDao(ds *gorm.DB) *signalDao {
	return &signalDao{
		ds: ds,
	}
}

func (s *signalDao) SignalCreate(ctx context.Context, signal *entity.TradeSignal) error {
	return s.ds.WithContext(ctx).Create(signal).Error
}

func (s *signalDao) SignalListByUser(ctx context.Context, userId int64, limit int) ([]entity.TradeSignal, error) {
	var signals []entity.TradeSignal
	err := s.ds.WithContext(ctx).Model(&entity.TradeSignal{}).
		Where("user_id = ?", userId).
		Order("timestamp desc").
		Limit(limit).
		Find(&signals).Error
	return signals, err
}

func (s *signalDao) SignalGetById(ctx context.Context, userId, signalId int64) (entity.TradeSignal, error) {
	var signal entity.TradeSignal
	err := s.ds.WithContext(ctx).
		Where("id = ?", signalId).
		Where("user_id = ?", userId).
		First(&signal).Error
	return signal, err
}

func (s *signalDao) SignalBulkCreate(ctx context.Context, signals []entity.TradeSignal) error {
	if len(signals) == 0 {
		return nil
	}
	return s.ds.WithContext(ctx).Create(&signals).Error
}
