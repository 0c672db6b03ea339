package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"signalboard/conf"
	"signalboard/internal/model"
	"signalboard/pkg/llm"
	"signalboard/pkg/logger"

	json "github.com/goccy/go-json"
)

type NewsService interface {
	// Start 启动后台定时刷新，ctx取消时停止
	Start(ctx context.Context)
	// Snapshot 当前日历和分析，分析未就绪时为nil
	Snapshot() model.NewsListRes
	// Refresh 立刻触发一次刷新
	Refresh(ctx context.Context)
}

// newsService 定时拉取经济日历并请求情绪分析。
// 每次刷新带自增序号，过期回复直接丢弃，不会覆盖新数据
type newsService struct {
	inf llm.Inferencer

	mu       sync.RWMutex
	items    []model.NewsItem
	analysis *model.NewsAnalysis
	seq      uint64 // 最近一次已应用的刷新序号
	nextSeq  uint64
}

func NewNewsService(inf llm.Inferencer) *newsService {
	return &newsService{inf: inf}
}

var newsAnalysisSchema = &llm.Schema{
	Type: llm.TypeObject,
	Properties: map[string]*llm.Schema{
		"summary":     {Type: llm.TypeString},
		"sentiment":   {Type: llm.TypeString, Enum: []string{"Bullish", "Bearish", "Neutral"}},
		"focusAsset":  {Type: llm.TypeString},
		"tradingHint": {Type: llm.TypeString},
	},
	Required: []string{"summary", "sentiment", "focusAsset", "tradingHint"},
}

func (n *newsService) Start(ctx context.Context) {
	interval := conf.AppConfig.News.RefreshInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	go func() {
		// 首次刷新也在后台跑，启动流程不等模型回复
		n.Refresh(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n.Refresh(ctx)
			}
		}
	}()
}

func (n *newsService) Snapshot() model.NewsListRes {
	n.mu.RLock()
	defer n.mu.RUnlock()
	items := make([]model.NewsItem, len(n.items))
	copy(items, n.items)
	return model.NewsListRes{
		Items:    items,
		Analysis: n.analysis,
	}
}

func (n *newsService) Refresh(ctx context.Context) {
	n.mu.Lock()
	n.nextSeq++
	seq := n.nextSeq
	n.mu.Unlock()

	items := todayCalendar()
	n.apply(seq, items, nil)

	analysis, err := n.analyze(ctx, items)
	if err != nil {
		logger.Errorf("新闻分析失败: %v", err)
		return
	}
	n.apply(seq, items, analysis)
}

// apply 只接受不早于当前序号的结果
func (n *newsService) apply(seq uint64, items []model.NewsItem, analysis *model.NewsAnalysis) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if seq < n.seq {
		return
	}
	n.seq = seq
	n.items = items
	if analysis != nil {
		n.analysis = analysis
	}
}

func (n *newsService) analyze(ctx context.Context, items []model.NewsItem) (*model.NewsAnalysis, error) {
	var sb strings.Builder
	for _, item := range items {
		fmt.Fprintf(&sb, "- %s %s: %s (impact: %s)\n", item.Time, item.Currency, item.Event, item.Impact)
	}
	prompt := fmt.Sprintf(`Today's economic calendar:
%s
Summarize the likely market impact for an intraday trader. focusAsset names the single most affected asset. tradingHint is one actionable sentence.

Respond with JSON only, matching the response schema exactly.`, sb.String())

	raw, err := n.inf.Generate(ctx, conf.AppConfig.Llm.FlashName, prompt, newsAnalysisSchema, 0.5)
	if err != nil {
		return nil, err
	}
	var analysis model.NewsAnalysis
	if err = json.Unmarshal(raw, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// todayCalendar 内置日历。没有外部数据源时面板也要有内容可看
func todayCalendar() []model.NewsItem {
	day := time.Now().Format("20060102")
	return []model.NewsItem{
		{Id: day + "-1", Time: "08:30", Currency: "USD", Event: "Non-Farm Payrolls", Impact: "High"},
		{Id: day + "-2", Time: "10:00", Currency: "USD", Event: "ISM Services PMI", Impact: "Medium"},
		{Id: day + "-3", Time: "12:45", Currency: "EUR", Event: "ECB Rate Decision", Impact: "High"},
		{Id: day + "-4", Time: "14:00", Currency: "GBP", Event: "BoE Gov Speech", Impact: "Medium"},
		{Id: day + "-5", Time: "19:30", Currency: "JPY", Event: "Tokyo Core CPI", Impact: "Low"},
	}
}
