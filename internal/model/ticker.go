package model

// LivePrice 模拟行情的一次报价
type LivePrice struct {
	Symbol      string  `json:"symbol"`
	Price       float64 `json:"price"`
	Change      float64 `json:"change"`
	LastUpdated int64   `json:"lastUpdated"` // 毫秒时间戳
}
