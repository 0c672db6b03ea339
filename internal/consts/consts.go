package consts

import "time"

const (
	// RequestId 请求id名称
	RequestId   = "request_id"
	UserID      = "user_id"
	JWTTokenCtx = "token_ctx"
	IsAdminCtx  = "is_admin_ctx"

	CaptchaPrefix           = "Captcha_list:"
	UserInfoPrefix          = "User_Info_list:"
	BacktestResultPrefix    = "Backtest_Result:"    // 每个用户最近一次回测结果
	PerformanceReviewPrefix = "Performance_Review:" // 绩效审查缓存，key带统计指纹

	// 默认redis过期时间
	RedisExrDefault = time.Hour * 24 * 5
	// 回测结果只做会话内缓存，不落库
	RedisExrBacktest = time.Hour * 12
)

const (
	DateLayout   = "2006-01-02"
	TimeLayout   = "2006-01-02 15:04:05"
	TimeLayoutMs = "2006-01-02 15:04:05.000"
)

// 市场分类
const (
	MarketForex       = "Forex"
	MarketIndices     = "Indices"
	MarketCommodities = "Commodities"
	MarketStocks      = "Stocks"
)

// 交易方向，NEUTRAL表示观望，不可结算
const (
	ActionBuy     = "BUY"
	ActionSell    = "SELL"
	ActionNeutral = "NEUTRAL"
)

// 结算结果
const (
	ResultWin  = "WIN"
	ResultLoss = "LOSS"
)

// 时间周期
const (
	TimeframeM15 = "15M"
	TimeframeH1  = "1H"
)

// 回测时长档位（天）
const (
	BacktestDays7  = 7
	BacktestDays30 = 30
	BacktestDays90 = 90
)

// 绩效审查的最小实盘笔数，低于该值不发起远程调用
const ReviewMinTradeCount = 3

// 活动事件类型，管理端实时日志按此分类
const (
	ActivityNewUser = "new_user"
	ActivityLogin   = "login"
	ActivityUpdate  = "update"
)

// 预置资产列表，按市场分类
var AvailableAssets = map[string][]string{
	MarketForex:       {"EUR/USD", "GBP/USD", "USD/JPY", "USD/CHF", "AUD/USD", "USD/CAD"},
	MarketIndices:     {"US30 (Dow)", "NAS100 (Nasdaq)", "SPX500", "GER40 (DAX)", "UK100"},
	MarketCommodities: {"XAU/USD (Gold)", "XAG/USD (Silver)", "WTI Oil", "Brent Oil", "Natural Gas"},
	MarketStocks:      {"AAPL", "TSLA", "NVDA", "AMZN", "MSFT", "GOOGL"},
}
