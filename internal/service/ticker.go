package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"signalboard/internal/model"
)

// TickerService 模拟行情源。每2秒对全部报价做一次随机游走并广播给订阅者
type TickerService struct {
	mu     sync.RWMutex
	prices []model.LivePrice
	subs   map[int]chan []model.LivePrice
	nextId int
	rnd    *rand.Rand
}

var defaultQuotes = []model.LivePrice{
	{Symbol: "EUR/USD", Price: 1.0850},
	{Symbol: "GBP/USD", Price: 1.2700},
	{Symbol: "USD/JPY", Price: 149.50},
	{Symbol: "XAU/USD", Price: 2350.00},
	{Symbol: "BTC/USD", Price: 64000.00},
	{Symbol: "US30", Price: 39000.00},
	{Symbol: "NAS100", Price: 18200.00},
}

func NewTickerService() *TickerService {
	prices := make([]model.LivePrice, len(defaultQuotes))
	copy(prices, defaultQuotes)
	return &TickerService{
		prices: prices,
		subs:   make(map[int]chan []model.LivePrice),
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (t *TickerService) Start(ctx context.Context) {
	ticker := time.NewTicker(2 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.tick()
			}
		}
	}()
}

// tick 单步随机游走，涨跌幅控制在±0.2%以内
func (t *TickerService) tick() {
	t.mu.Lock()
	now := time.Now().UnixMilli()
	for i := range t.prices {
		delta := (t.rnd.Float64() - 0.5) * 0.004
		old := t.prices[i].Price
		t.prices[i].Price = old * (1 + delta)
		t.prices[i].Change = delta * 100
		t.prices[i].LastUpdated = now
	}
	snapshot := make([]model.LivePrice, len(t.prices))
	copy(snapshot, t.prices)
	t.mu.Unlock()

	t.broadcast(snapshot)
}

// broadcast 慢消费者直接跳过，不阻塞行情循环
func (t *TickerService) broadcast(snapshot []model.LivePrice) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, ch := range t.subs {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

func (t *TickerService) Snapshot() []model.LivePrice {
	t.mu.RLock()
	defer t.mu.RUnlock()
	snapshot := make([]model.LivePrice, len(t.prices))
	copy(snapshot, t.prices)
	return snapshot
}

// Subscribe 返回行情通道和取消函数
func (t *TickerService) Subscribe() (<-chan []model.LivePrice, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextId
	t.nextId++
	ch := make(chan []model.LivePrice, 4)
	t.subs[id] = ch

	cancel := func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if sub, ok := t.subs[id]; ok {
			delete(t.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}
