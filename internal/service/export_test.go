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

func newExportFixture() (*exportService, *ledgerService, *memSignalDao, *memBacktestStore) {
	ud := newMemUserDao(&entity.User{Id: 1, Username: "trader", Capital: 1000})
	sd := newMemSignalDao()
	td := newMemTradeDao(ud, sd)
	store := newMemBacktestStore()
	return NewExportService(ud, sd, td, store), NewLedgerService(ud, sd, td, nil, nil), sd, store
}

func TestExportImportRoundTrip(t *testing.T) {
	es, ledger, sd, store := newExportFixture()
	ctx := context.Background()

	require.NoError(t, sd.SignalCreate(ctx, buySignal(1)))
	require.NoError(t, sd.SignalCreate(ctx, buySignal(2)))
	_, err := ledger.Settle(ctx, 1, model.SettleReq{SignalId: 1, Result: consts.ResultWin, Amount: 50})
	require.NoError(t, err)
	_, err = ledger.Settle(ctx, 1, model.SettleReq{SignalId: 2, Result: consts.ResultLoss, Amount: 30})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, 1, &model.BacktestResult{TotalTrades: 10, WinRate: 60}))

	doc, err := es.Export(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1020.0, doc.Capital)
	assert.Len(t, doc.History, 2)
	assert.Len(t, doc.Signals, 2)
	require.NotNil(t, doc.BacktestResult)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	// 导入到另一个账号，资金和流水完整还原
	es2, _, _, store2 := newExportFixture()
	res, err := es2.Import(ctx, 1, raw)
	require.NoError(t, err)
	assert.Equal(t, 1020.0, res.Capital)
	assert.Equal(t, 2, res.ImportedTrades)
	assert.Equal(t, 2, res.ImportedSignals)

	bt, err := store2.Load(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, bt)
	assert.Equal(t, 10, bt.TotalTrades)
}

func TestImportRejectsInvalidDocument(t *testing.T) {
	es, _, _, _ := newExportFixture()
	ctx := context.Background()

	cases := []string{
		`not json`,
		`{"capital": -5, "history": [], "signals": []}`,
		`{"capital": 0, "history": [], "signals": []}`,
		`{"capital": 1000, "history": [{"result": "MAYBE"}], "signals": []}`,
	}
	for _, raw := range cases {
		_, err := es.Import(ctx, 1, []byte(raw))
		require.Error(t, err, "document %q should be rejected", raw)
		assert.True(t, errors.IsCode(err, ecode.ImportErr), "document %q", raw)
	}
}
