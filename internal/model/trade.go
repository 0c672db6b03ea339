package model

import (
	"signalboard/internal/model/entity"
)

// SettleReq 把一条信号的假设结果标记为WIN/LOSS
type SettleReq struct {
	SignalId int64   `json:"signal_id" validate:"required" label:"信号id"`
	Result   string  `json:"result" validate:"required,oneof=WIN LOSS" label:"结算结果"`
	Amount   float64 `json:"amount" validate:"required" label:"金额"` // 正数，方向由Result决定
}

type SettleRes struct {
	Trade   entity.Trade `json:"trade"`
	Capital float64      `json:"capital"` // 结算后的余额，等于trade.balance_after
}

type TradeListReq struct {
	Limit int `form:"limit" json:"limit"`
	Page  int `form:"page" json:"page"`
}

type TradeListRes struct {
	Trades []entity.Trade `json:"trades"` // 按date倒序
}

// DailyPnl 单个自然日的盈亏合计
type DailyPnl struct {
	Date string  `json:"date"` // dd/mm
	Pnl  float64 `json:"pnl"`
}

// TradeReport 周报聚合：逐日盈亏只保留最近7个有交易的自然日
type TradeReport struct {
	TotalTrades int        `json:"total_trades"`
	WinCount    int        `json:"win_count"`
	LossCount   int        `json:"loss_count"`
	WinRate     int        `json:"win_rate"` // round(win/count*100)
	AvgWin      float64    `json:"avg_win"`
	AvgLoss     float64    `json:"avg_loss"` // 负数
	Daily       []DailyPnl `json:"daily"`
}

// LiveStats 实盘统计，由已结算流水累加得出
type LiveStats struct {
	TradeCount  int     `json:"trade_count"`
	WinCount    int     `json:"win_count"`
	WinRate     int     `json:"win_rate"` // round(win/count*100)
	TotalProfit float64 `json:"total_profit"`
	TotalLoss   float64 `json:"total_loss"` // 负数
}
