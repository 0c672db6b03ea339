package service

import (
	"context"
	"testing"

	"signalboard/internal/consts"
	"signalboard/internal/model"
	"signalboard/internal/model/entity"
	"signalboard/pkg/errors"
	"signalboard/pkg/errors/ecode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewFixture(t *testing.T) (*reviewService, *ledgerService, *memSignalDao, *memBacktestStore, *mockInferencer) {
	ud := newMemUserDao(&entity.User{Id: 1, Username: "trader", Capital: 1000})
	sd := newMemSignalDao()
	td := newMemTradeDao(ud, sd)
	ledger := NewLedgerService(ud, sd, td, nil, nil)
	store := newMemBacktestStore()
	inf := &mockInferencer{reply: model.PerformanceReview{
		Status:          "Caution",
		LiveWinRate:     67,
		BacktestWinRate: 72,
		RiskAdjustment:  "Reduce to 1%",
		Advice:          "tighten stops",
		Reason:          "live win rate below baseline",
	}}
	rs := NewReviewService(ledger, store, newMemReviewCache(), inf)
	return rs, ledger, sd, store, inf
}

func settleN(t *testing.T, ledger *ledgerService, sd *memSignalDao, n int) {
	for i := 0; i < n; i++ {
		id := int64(1000 + i)
		require.NoError(t, sd.SignalCreate(context.Background(), buySignal(id)))
		result := consts.ResultWin
		if i%3 == 2 {
			result = consts.ResultLoss
		}
		_, err := ledger.Settle(context.Background(), 1, model.SettleReq{SignalId: id, Result: result, Amount: 10})
		require.NoError(t, err)
	}
}

func TestReviewGateBelowMinTrades(t *testing.T) {
	rs, ledger, sd, store, inf := newReviewFixture(t)
	require.NoError(t, store.Save(context.Background(), 1, &model.BacktestResult{TotalTrades: 20, WinRate: 72}))

	settleN(t, ledger, sd, consts.ReviewMinTradeCount-1)

	_, err := rs.Review(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, ecode.ReviewGateErr))
	// 门槛未过不允许发起远程调用
	assert.Equal(t, 0, inf.callCount())
}

func TestReviewGateRequiresBacktest(t *testing.T) {
	rs, ledger, sd, _, inf := newReviewFixture(t)
	settleN(t, ledger, sd, consts.ReviewMinTradeCount)

	_, err := rs.Review(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, ecode.ReviewGateErr))
	assert.Equal(t, 0, inf.callCount())
}

func TestReviewCachedPerStatsChange(t *testing.T) {
	rs, ledger, sd, store, inf := newReviewFixture(t)
	require.NoError(t, store.Save(context.Background(), 1, &model.BacktestResult{TotalTrades: 20, WinRate: 72, StrategyQuality: "Good"}))

	settleN(t, ledger, sd, 3)

	res, err := rs.Review(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Caution", res.Status)
	assert.Equal(t, 1, inf.callCount())

	// 数据没变，结论复用缓存
	_, err = rs.Review(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, inf.callCount())

	// 新结算一笔后指纹变化，重新调用
	require.NoError(t, sd.SignalCreate(context.Background(), buySignal(2000)))
	_, err = ledger.Settle(context.Background(), 1, model.SettleReq{SignalId: 2000, Result: consts.ResultWin, Amount: 10})
	require.NoError(t, err)

	_, err = rs.Review(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, inf.callCount())
}
