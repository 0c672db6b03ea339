package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickerRandomWalk(t *testing.T) {
	ts := NewTickerService()
	before := ts.Snapshot()
	require.NotEmpty(t, before)

	ts.tick()

	after := ts.Snapshot()
	require.Len(t, after, len(before))
	for i := range after {
		assert.Equal(t, before[i].Symbol, after[i].Symbol)
		assert.Positive(t, after[i].Price)
		// 单步涨跌不超过±0.2%
		assert.InEpsilon(t, before[i].Price, after[i].Price, 0.0021)
		assert.NotZero(t, after[i].LastUpdated)
	}
}

func TestTickerSubscribe(t *testing.T) {
	ts := NewTickerService()
	ch, cancel := ts.Subscribe()

	ts.tick()

	select {
	case snapshot := <-ch:
		require.NotEmpty(t, snapshot)
	default:
		t.Fatal("expected a broadcast after tick")
	}

	cancel()
	// 取消后通道关闭
	_, ok := <-ch
	assert.False(t, ok)
}
