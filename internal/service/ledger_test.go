package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"signalboard/internal/consts"
	"signalboard/internal/model"
	"signalboard/internal/model/entity"
	"signalboard/pkg/errors"
	"signalboard/pkg/errors/ecode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerFixture(capital float64) (*ledgerService, *memUserDao, *memSignalDao) {
	ud := newMemUserDao(&entity.User{Id: 1, Username: "trader", Capital: capital})
	sd := newMemSignalDao()
	td := newMemTradeDao(ud, sd)
	return NewLedgerService(ud, sd, td, nil, nil), ud, sd
}

func buySignal(id int64) *entity.TradeSignal {
	return &entity.TradeSignal{
		Id:        id,
		UserId:    1,
		Asset:     "EUR/USD",
		Action:    consts.ActionBuy,
		Status:    "PENDING",
		Timestamp: time.Now(),
	}
}

func TestCapitalUpdate(t *testing.T) {
	ls, _, _ := newLedgerFixture(1000)

	res, err := ls.CapitalUpdate(context.Background(), 1, "2500.50")
	require.NoError(t, err)
	assert.Equal(t, 2500.50, res.Capital)

	got, err := ls.CapitalGet(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2500.50, got.Capital)
}

func TestCapitalUpdateRejectsInvalid(t *testing.T) {
	ls, _, _ := newLedgerFixture(1000)

	for _, raw := range []string{"-5", "0", "NaN", "Inf", "abc", ""} {
		_, err := ls.CapitalUpdate(context.Background(), 1, raw)
		require.Error(t, err, "input %q should be rejected", raw)
		assert.True(t, errors.IsCode(err, ecode.CapitalErr), "input %q", raw)
	}

	// 非法输入后余额保持不变
	got, err := ls.CapitalGet(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, got.Capital)
}

func TestSettleWinAndLoss(t *testing.T) {
	ls, _, sd := newLedgerFixture(1000)
	require.NoError(t, sd.SignalCreate(context.Background(), buySignal(100)))
	require.NoError(t, sd.SignalCreate(context.Background(), buySignal(101)))

	res, err := ls.Settle(context.Background(), 1, model.SettleReq{SignalId: 100, Result: consts.ResultWin, Amount: 50})
	require.NoError(t, err)
	assert.Equal(t, 1050.0, res.Capital)
	assert.Equal(t, 50.0, res.Trade.Amount)
	assert.Equal(t, 1050.0, res.Trade.BalanceAfter)

	res, err = ls.Settle(context.Background(), 1, model.SettleReq{SignalId: 101, Result: consts.ResultLoss, Amount: 30})
	require.NoError(t, err)
	assert.Equal(t, 1020.0, res.Capital)
	assert.Equal(t, -30.0, res.Trade.Amount)
	assert.Equal(t, 1020.0, res.Trade.BalanceAfter)
}

func TestSettleRejectsNeutralAndClosed(t *testing.T) {
	ls, _, sd := newLedgerFixture(1000)

	neutral := buySignal(200)
	neutral.Action = consts.ActionNeutral
	require.NoError(t, sd.SignalCreate(context.Background(), neutral))

	_, err := ls.Settle(context.Background(), 1, model.SettleReq{SignalId: 200, Result: consts.ResultWin, Amount: 10})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, ecode.SettleErr))

	// 已结算的信号不可重复结算
	require.NoError(t, sd.SignalCreate(context.Background(), buySignal(201)))
	_, err = ls.Settle(context.Background(), 1, model.SettleReq{SignalId: 201, Result: consts.ResultWin, Amount: 10})
	require.NoError(t, err)
	_, err = ls.Settle(context.Background(), 1, model.SettleReq{SignalId: 201, Result: consts.ResultLoss, Amount: 10})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, ecode.SettleErr))
}

func TestSettleConcurrentSignalsKeepsBalance(t *testing.T) {
	ls, _, sd := newLedgerFixture(1000)
	require.NoError(t, sd.SignalCreate(context.Background(), buySignal(500)))
	require.NoError(t, sd.SignalCreate(context.Background(), buySignal(501)))

	var wg sync.WaitGroup
	settle := func(id int64, result string, amount float64) {
		defer wg.Done()
		_, err := ls.Settle(context.Background(), 1, model.SettleReq{SignalId: id, Result: result, Amount: amount})
		assert.NoError(t, err)
	}
	wg.Add(2)
	go settle(500, consts.ResultWin, 50)
	go settle(501, consts.ResultLoss, 30)
	wg.Wait()

	// 两笔结算都不能丢：1000 + 50 - 30
	got, err := ls.CapitalGet(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1020.0, got.Capital)
}

func TestSettleConcurrentSameSignalOnlyOnce(t *testing.T) {
	ls, _, sd := newLedgerFixture(1000)
	require.NoError(t, sd.SignalCreate(context.Background(), buySignal(600)))

	var wg sync.WaitGroup
	var okCount int32
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ls.Settle(context.Background(), 1, model.SettleReq{SignalId: 600, Result: consts.ResultWin, Amount: 25})
			if err == nil {
				atomic.AddInt32(&okCount, 1)
			} else {
				assert.True(t, errors.IsCode(err, ecode.SettleErr))
			}
		}()
	}
	wg.Wait()

	// 同一信号只允许结算一次
	assert.Equal(t, int32(1), okCount)
	got, err := ls.CapitalGet(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1025.0, got.Capital)
}

func TestSettleRejectsNonPositiveAmount(t *testing.T) {
	ls, _, sd := newLedgerFixture(1000)
	require.NoError(t, sd.SignalCreate(context.Background(), buySignal(300)))

	for _, amount := range []float64{0, -20} {
		_, err := ls.Settle(context.Background(), 1, model.SettleReq{SignalId: 300, Result: consts.ResultWin, Amount: amount})
		require.Error(t, err)
	}
}

func TestTradeReportLastSevenActiveDays(t *testing.T) {
	ud := newMemUserDao(&entity.User{Id: 1, Username: "trader", Capital: 1000})
	sd := newMemSignalDao()
	td := newMemTradeDao(ud, sd)
	ls := NewLedgerService(ud, sd, td, nil, nil)

	// 9个交易日每日一笔，第3/6/9日为亏损
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	var trades []entity.Trade
	for i := 0; i < 9; i++ {
		trade := entity.Trade{Id: int64(i + 1), UserId: 1, Date: base.AddDate(0, 0, i), Result: consts.ResultWin, Amount: 40}
		if i%3 == 2 {
			trade.Result = consts.ResultLoss
			trade.Amount = -20
		}
		trades = append(trades, trade)
	}
	require.NoError(t, td.TradeBulkCreate(context.Background(), trades))

	rep, err := ls.Report(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 9, rep.TotalTrades)
	assert.Equal(t, 6, rep.WinCount)
	assert.Equal(t, 3, rep.LossCount)
	assert.Equal(t, 67, rep.WinRate)
	assert.Equal(t, 40.0, rep.AvgWin)
	assert.Equal(t, -20.0, rep.AvgLoss)

	// 只保留最近7个有交易的自然日
	require.Len(t, rep.Daily, 7)
	assert.Equal(t, "03/08", rep.Daily[0].Date)
	assert.Equal(t, -20.0, rep.Daily[0].Pnl)
	assert.Equal(t, "09/08", rep.Daily[6].Date)
	assert.Equal(t, -20.0, rep.Daily[6].Pnl)
}

func TestTradeReportEmpty(t *testing.T) {
	ls, _, _ := newLedgerFixture(1000)

	rep, err := ls.Report(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, rep.TotalTrades)
	assert.Empty(t, rep.Daily)
}

func TestLiveStatsWinRateRounding(t *testing.T) {
	ls, _, sd := newLedgerFixture(1000)
	for i := int64(0); i < 3; i++ {
		require.NoError(t, sd.SignalCreate(context.Background(), buySignal(400+i)))
	}

	// 2胜1负 => round(66.66) = 67
	mustSettle := func(id int64, result string, amount float64) {
		_, err := ls.Settle(context.Background(), 1, model.SettleReq{SignalId: id, Result: result, Amount: amount})
		require.NoError(t, err)
	}
	mustSettle(400, consts.ResultWin, 50)
	mustSettle(401, consts.ResultWin, 40)
	mustSettle(402, consts.ResultLoss, 30)

	stats, err := ls.LiveStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TradeCount)
	assert.Equal(t, 2, stats.WinCount)
	assert.Equal(t, 67, stats.WinRate)
	assert.Equal(t, 90.0, stats.TotalProfit)
	assert.Equal(t, -30.0, stats.TotalLoss)
}
