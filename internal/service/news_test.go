package service

import (
	"context"
	"testing"
	"time"

	"signalboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsRefreshPopulatesSnapshot(t *testing.T) {
	inf := &mockInferencer{reply: model.NewsAnalysis{
		Summary:     "heavy USD day",
		Sentiment:   "Bearish",
		FocusAsset:  "EUR/USD",
		TradingHint: "avoid entries around NFP",
	}}
	ns := NewNewsService(inf)

	ns.Refresh(context.Background())

	snap := ns.Snapshot()
	require.NotEmpty(t, snap.Items)
	require.NotNil(t, snap.Analysis)
	assert.Equal(t, "Bearish", snap.Analysis.Sentiment)
	assert.Equal(t, 1, inf.callCount())
}

func TestNewsAnalysisFailureKeepsItems(t *testing.T) {
	inf := &mockInferencer{err: assert.AnError}
	ns := NewNewsService(inf)

	ns.Refresh(context.Background())

	// 分析失败不影响日历展示，分析字段保持为空
	snap := ns.Snapshot()
	require.NotEmpty(t, snap.Items)
	assert.Nil(t, snap.Analysis)
}

func TestNewsStartReturnsBeforeFirstRefresh(t *testing.T) {
	release := make(chan struct{})
	inf := &mockInferencer{replyFn: func(prompt string) interface{} {
		<-release
		return model.NewsAnalysis{Summary: "late", Sentiment: "Neutral"}
	}}
	ns := NewNewsService(inf)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		ns.Start(ctx)
		close(done)
	}()

	// 首次刷新在后台执行，Start不等分析回复
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start blocked on first refresh")
	}

	close(release)
	assert.Eventually(t, func() bool {
		return ns.Snapshot().Analysis != nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNewsStaleReplyDiscarded(t *testing.T) {
	inf := &mockInferencer{reply: model.NewsAnalysis{Summary: "first", Sentiment: "Neutral"}}
	ns := NewNewsService(inf)

	// 模拟慢回复：序号1的刷新先占坑
	ns.mu.Lock()
	ns.nextSeq++
	staleSeq := ns.nextSeq
	ns.mu.Unlock()

	// 序号2的刷新先完成并应用
	ns.Refresh(context.Background())
	fresh := ns.Snapshot()
	require.NotNil(t, fresh.Analysis)

	// 迟到的序号1结果必须被丢弃
	stale := &model.NewsAnalysis{Summary: "stale", Sentiment: "Bullish"}
	ns.apply(staleSeq, []model.NewsItem{{Id: "stale-1"}}, stale)

	snap := ns.Snapshot()
	assert.Equal(t, fresh.Analysis.Summary, snap.Analysis.Summary)
	assert.NotEqual(t, "stale-1", snap.Items[0].Id)
}
