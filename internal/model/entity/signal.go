package entity

import (
	"signalboard/internal/consts"
	"time"

	"gorm.io/datatypes"
)

// TradeSignal 一条AI生成的交易建议，创建后不可变，按时间倒序展示
type TradeSignal struct {
	Id         int64     `gorm:"column:id;primary_key" json:"id"`
	UserId     int64     `gorm:"column:user_id;not null;index:idx_user_ts" json:"user_id"`
	Asset      string    `gorm:"column:asset;type:varchar(30);not null" json:"asset"`
	MarketType string    `gorm:"column:market_type;type:varchar(20)" json:"market_type"`
	ModelUsed  string    `gorm:"column:model_used;type:varchar(50)" json:"model_used"`
	Timeframe  string    `gorm:"column:timeframe;type:varchar(10)" json:"timeframe"`
	Timestamp  time.Time `gorm:"column:timestamp;type:timestamp;not null;index:idx_user_ts" json:"timestamp"`

	Action          string  `gorm:"column:action;type:varchar(10);not null" json:"action"` // BUY/SELL/NEUTRAL
	EntryPrice      float64 `gorm:"column:entry_price;type:decimal(15,8)" json:"entry_price"`
	StopLoss        float64 `gorm:"column:stop_loss;type:decimal(15,8)" json:"stop_loss"`
	TakeProfit      float64 `gorm:"column:take_profit;type:decimal(15,8)" json:"take_profit"`
	Probability     float64 `gorm:"column:probability;type:decimal(5,2)" json:"probability"` // 0-100
	RiskRewardRatio string  `gorm:"column:risk_reward_ratio;type:varchar(20)" json:"risk_reward_ratio"`
	MarketCondition string  `gorm:"column:market_condition;type:varchar(20)" json:"market_condition"` // Stable/Volatile/High Risk

	// 按资金1-2%风险预算估算的金额
	ExpectedProfitAmount float64 `gorm:"column:expected_profit_amount;type:decimal(15,2)" json:"expected_profit_amount"`
	ExpectedLossAmount   float64 `gorm:"column:expected_loss_amount;type:decimal(15,2)" json:"expected_loss_amount"`
	RiskAmount           float64 `gorm:"column:risk_amount;type:decimal(15,2)" json:"risk_amount"`

	Status string `gorm:"column:status;type:varchar(10)" json:"status"` // PENDING/CLOSED

	// 叙述性分析，扁平化存储，指标和关键事件用JSON字段
	TechnicalSummary   string         `gorm:"column:technical_summary;type:text" json:"technical_summary"`
	Trend              string         `gorm:"column:trend;type:varchar(20)" json:"trend"`
	Indicators         datatypes.JSON `gorm:"column:indicators_json;type:json" json:"indicators"` // [{name,value,signal}]
	FundamentalSummary string         `gorm:"column:fundamental_summary;type:text" json:"fundamental_summary"`
	Sentiment          string         `gorm:"column:sentiment;type:varchar(20)" json:"sentiment"` // Risk-On/Risk-Off/Neutral
	KeyEvents          datatypes.JSON `gorm:"column:key_events_json;type:json" json:"key_events"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (TradeSignal) TableName() string {
	return "signals"
}

// IsSettleable NEUTRAL信号不可结算
func (s *TradeSignal) IsSettleable() bool {
	return s.Action == consts.ActionBuy || s.Action == consts.ActionSell
}
