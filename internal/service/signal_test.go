package service

import (
	"context"
	"testing"

	"signalboard/internal/consts"
	"signalboard/internal/model"
	"signalboard/internal/model/entity"
	"signalboard/pkg/errors"
	"signalboard/pkg/errors/ecode"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload(action string) model.SignalPayload {
	return model.SignalPayload{
		Action:               action,
		EntryPrice:           1.0850,
		StopLoss:             1.0820,
		TakeProfit:           1.0910,
		Probability:          78,
		RiskRewardRatio:      "1:2",
		MarketCondition:      "Stable",
		ExpectedProfitAmount: 40,
		ExpectedLossAmount:   20,
		RiskAmount:           20,
		TechnicalSummary:     "bullish momentum",
		Trend:                "Bullish",
		RsiValue:             62,
		RsiSignal:            "Positive",
		MacdSignal:           "Positive",
		EmaSignal:            "Positive",
		FundamentalSummary:   "risk-on flows",
		Sentiment:            "Risk-On",
		KeyEvents:            []string{"NFP Friday"},
	}
}

func TestAnalyzePersistsSignal(t *testing.T) {
	ud := newMemUserDao(&entity.User{Id: 1, Capital: 1000})
	sd := newMemSignalDao()
	inf := &mockInferencer{reply: samplePayload(consts.ActionBuy)}
	ss := NewSignalService(sd, ud, inf)

	req := model.AnalyzeReq{Asset: "EUR/USD", MarketType: consts.MarketForex, ModelId: "flash", Timeframe: consts.TimeframeM15}
	signal, err := ss.Analyze(context.Background(), 1, req)
	require.NoError(t, err)

	assert.Equal(t, consts.ActionBuy, signal.Action)
	assert.Equal(t, "PENDING", signal.Status)
	assert.Equal(t, "EUR/USD", signal.Asset)
	assert.True(t, signal.IsSettleable())
	assert.NotZero(t, signal.Id)

	var indicators []model.TechnicalIndicator
	require.NoError(t, json.Unmarshal(signal.Indicators, &indicators))
	require.Len(t, indicators, 3)
	assert.Equal(t, "RSI", indicators[0].Name)

	// 已落库并出现在列表里
	list, err := ss.SignalList(context.Background(), 1, model.SignalListReq{})
	require.NoError(t, err)
	require.Len(t, list.Signals, 1)
	assert.Equal(t, signal.Id, list.Signals[0].Id)
}

func TestAnalyzeNeutralNotSettleable(t *testing.T) {
	ud := newMemUserDao(&entity.User{Id: 1, Capital: 1000})
	sd := newMemSignalDao()
	inf := &mockInferencer{reply: samplePayload(consts.ActionNeutral)}
	ss := NewSignalService(sd, ud, inf)

	req := model.AnalyzeReq{Asset: "XAU/USD (Gold)", MarketType: consts.MarketCommodities, ModelId: "pro", Timeframe: consts.TimeframeH1}
	signal, err := ss.Analyze(context.Background(), 1, req)
	require.NoError(t, err)
	assert.Equal(t, consts.ActionNeutral, signal.Action)
	assert.False(t, signal.IsSettleable())
}

func TestAnalyzeRejectsUnknownAsset(t *testing.T) {
	ud := newMemUserDao(&entity.User{Id: 1, Capital: 1000})
	sd := newMemSignalDao()
	inf := &mockInferencer{reply: samplePayload(consts.ActionBuy)}
	ss := NewSignalService(sd, ud, inf)

	// 资产不在对应市场的预置列表里时直接拒绝，不触发推理
	for _, req := range []model.AnalyzeReq{
		{Asset: "FOO/BAR", MarketType: consts.MarketForex, ModelId: "flash", Timeframe: consts.TimeframeM15},
		{Asset: "EUR/USD", MarketType: consts.MarketStocks, ModelId: "flash", Timeframe: consts.TimeframeM15},
	} {
		_, err := ss.Analyze(context.Background(), 1, req)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, ecode.ValidateErr))
	}
	assert.Zero(t, inf.callCount())
}

func TestSignalListDefaultLimit(t *testing.T) {
	ud := newMemUserDao(&entity.User{Id: 1, Capital: 1000})
	sd := newMemSignalDao()
	inf := &mockInferencer{reply: samplePayload(consts.ActionBuy)}
	ss := NewSignalService(sd, ud, inf)

	req := model.AnalyzeReq{Asset: "EUR/USD", MarketType: consts.MarketForex, ModelId: "flash", Timeframe: consts.TimeframeM15}
	for i := 0; i < 12; i++ {
		_, err := ss.Analyze(context.Background(), 1, req)
		require.NoError(t, err)
	}

	list, err := ss.SignalList(context.Background(), 1, model.SignalListReq{})
	require.NoError(t, err)
	assert.Len(t, list.Signals, 10)
}
