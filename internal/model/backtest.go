package model

// BacktestReq 回测请求，时长档位只允许7/30/90天
type BacktestReq struct {
	Asset     string `json:"asset" validate:"required" label:"资产"`
	Timeframe string `json:"timeframe" validate:"required,oneof=15M 1H" label:"时间周期"`
	Days      int    `json:"days" validate:"required,oneof=7 30 90" label:"回测时长"`
}

// EquityPoint 资金曲线上的一个点
type EquityPoint struct {
	Day     string  `json:"day"`
	Balance float64 `json:"balance"`
}

// BacktestResult 一次历史策略模拟的聚合结果，只在会话内缓存，不落库
type BacktestResult struct {
	TotalTrades     int           `json:"totalTrades"`
	WinningTrades   int           `json:"winningTrades"`
	LosingTrades    int           `json:"losingTrades"`
	WinRate         float64       `json:"winRate"`
	TotalProfit     float64       `json:"totalProfit"`
	TotalLoss       float64       `json:"totalLoss"`
	FinalCapital    float64       `json:"finalCapital"`
	MaxDrawdown     float64       `json:"maxDrawdown"`
	StrategyQuality string        `json:"strategyQuality"` // Good/Average/Weak
	Explanation     string        `json:"explanation"`
	EquityCurve     []EquityPoint `json:"equityCurve"`
}
