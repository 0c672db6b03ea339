package model

// PerformanceReview 回测与实盘对比的结论，由远程模型给出，服务端只转发
type PerformanceReview struct {
	Status          string  `json:"status"` // Safe/Caution/Stop
	LiveWinRate     float64 `json:"liveWinRate"`
	BacktestWinRate float64 `json:"backtestWinRate"`
	RiskAdjustment  string  `json:"riskAdjustment"` // 比如 "Reduce to 1%"
	Advice          string  `json:"advice"`
	Reason          string  `json:"reason"`
}
