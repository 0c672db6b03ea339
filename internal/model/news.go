package model

// NewsItem 经济日历条目
type NewsItem struct {
	Id       string `json:"id"`
	Time     string `json:"time"`
	Currency string `json:"currency"`
	Event    string `json:"event"`
	Impact   string `json:"impact"` // High/Medium/Low
}

// NewsAnalysis 对当日日历的情绪/影响摘要
type NewsAnalysis struct {
	Summary     string `json:"summary"`
	Sentiment   string `json:"sentiment"` // Bullish/Bearish/Neutral
	FocusAsset  string `json:"focusAsset"`
	TradingHint string `json:"tradingHint"`
}

type NewsListRes struct {
	Items    []NewsItem    `json:"items"`
	Analysis *NewsAnalysis `json:"analysis"` // 未生成时为null
}
