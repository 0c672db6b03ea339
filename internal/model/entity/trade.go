package entity

import (
	"time"
)

// Trade 一笔已结算的模拟交易，只追加不修改，构成资金流水账
type Trade struct {
	Id           int64     `gorm:"column:id;primary_key" json:"id"`
	UserId       int64     `gorm:"column:user_id;not null;index:idx_user_date" json:"user_id"`
	SignalId     int64     `gorm:"column:signal_id" json:"signal_id"`
	Date         time.Time `gorm:"column:date;type:timestamp;not null;index:idx_user_date" json:"date"`
	Asset        string    `gorm:"column:asset;type:varchar(30)" json:"asset"`
	Action       string    `gorm:"column:action;type:varchar(10)" json:"action"`            // BUY/SELL
	Result       string    `gorm:"column:result;type:varchar(10);not null" json:"result"`   // WIN/LOSS
	Amount       float64   `gorm:"column:amount;type:decimal(15,2);not null" json:"amount"` // 带符号，WIN为正LOSS为负
	BalanceAfter float64   `gorm:"column:balance_after;type:decimal(15,2);not null" json:"balance_after"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Trade) TableName() string {
	return "trades"
}
