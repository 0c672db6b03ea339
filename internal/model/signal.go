package model

import (
	"signalboard/internal/model/entity"
)

// AnalyzeReq 发起一次AI分析
type AnalyzeReq struct {
	Asset      string `json:"asset" validate:"required" label:"资产"`
	MarketType string `json:"market_type" validate:"required,oneof=Forex Indices Commodities Stocks" label:"市场分类"`
	ModelId    string `json:"model_id" validate:"required,oneof=flash pro" label:"模型"`
	Timeframe  string `json:"timeframe" validate:"required,oneof=15M 1H" label:"时间周期"`
}

type SignalListReq struct {
	Limit int `form:"limit" json:"limit"` // 默认10
}

type SignalListRes struct {
	Signals []entity.TradeSignal `json:"signals"` // 最新的在最前
}

// TechnicalIndicator 指标摘要，序列化进signals.indicators_json
type TechnicalIndicator struct {
	Name   string      `json:"name"`
	Value  interface{} `json:"value"`
	Signal string      `json:"signal"` // Positive/Negative/Neutral
}

// SignalPayload 模型按schema返回的原始JSON结构
type SignalPayload struct {
	Action               string   `json:"action"`
	EntryPrice           float64  `json:"entryPrice"`
	StopLoss             float64  `json:"stopLoss"`
	TakeProfit           float64  `json:"takeProfit"`
	Probability          float64  `json:"probability"`
	RiskRewardRatio      string   `json:"riskRewardRatio"`
	MarketCondition      string   `json:"marketCondition"`
	ExpectedProfitAmount float64  `json:"expectedProfitAmount"`
	ExpectedLossAmount   float64  `json:"expectedLossAmount"`
	RiskAmount           float64  `json:"riskAmount"`
	TechnicalSummary     string   `json:"technicalSummary"`
	Trend                string   `json:"trend"`
	RsiValue             float64  `json:"rsiValue"`
	RsiSignal            string   `json:"rsiSignal"`
	MacdSignal           string   `json:"macdSignal"`
	EmaSignal            string   `json:"emaSignal"`
	FundamentalSummary   string   `json:"fundamentalSummary"`
	Sentiment            string   `json:"sentiment"`
	KeyEvents            []string `json:"keyEvents"`
}
