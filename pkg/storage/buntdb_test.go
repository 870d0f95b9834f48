package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raykavin/rangerev/pkg/backtest"
	"github.com/raykavin/rangerev/pkg/config"
)

func TestBuntStorage_RoundTrip(t *testing.T) {
	store, err := FromMemory()
	require.NoError(t, err)
	defer store.Close()

	first := &Record{Label: "baseline", Trades: 5, NetPnL: 42}
	second := &Record{Label: "tuned", Trades: 12, NetPnL: 80}
	require.NoError(t, store.SaveRun(first))
	require.NoError(t, store.SaveRun(second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	records, err := store.Runs()
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestBuntStorage_ReopenContinuesIDSequence(t *testing.T) {
	file := filepath.Join(t.TempDir(), "runs.db")

	store, err := FromFile(file)
	require.NoError(t, err)
	require.NoError(t, store.SaveRun(&Record{Label: "first", Trades: 1}))
	require.NoError(t, store.Close())

	store, err = FromFile(file)
	require.NoError(t, err)
	defer store.Close()

	second := &Record{Label: "second", Trades: 2}
	require.NoError(t, store.SaveRun(second))
	assert.Equal(t, int64(2), second.ID)

	records, err := store.Runs()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "first", records[0].Label)
	assert.Equal(t, "second", records[1].Label)
}

func TestBuntStorage_Filters(t *testing.T) {
	store, err := FromMemory()
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.SaveRun(&Record{Label: "baseline", Trades: 5}))
	require.NoError(t, store.SaveRun(&Record{Label: "tuned", Trades: 12}))
	require.NoError(t, store.SaveRun(&Record{Label: "tuned", Trades: 2}))

	records, err := store.Runs(WithLabel("tuned"))
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = store.Runs(WithLabel("tuned"), WithMinTrades(10))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 12, records[0].Trades)
}

func TestNewRecord(t *testing.T) {
	result := backtest.Result{
		Config: config.Default(),
		Metrics: backtest.Metrics{
			Trades:       3,
			Wins:         2,
			Losses:       1,
			NetPnL:       65,
			EndingEquity: 1065,
		},
	}

	record, err := NewRecord("fixture", result)
	require.NoError(t, err)

	assert.Equal(t, "fixture", record.Label)
	assert.Equal(t, 3, record.Trades)
	assert.Equal(t, 65.0, record.NetPnL)
	assert.Equal(t, 1065.0, record.EndingEquity)
	assert.Contains(t, record.Config, "riskPctPerTrade")
	assert.False(t, record.CreatedAt.IsZero())
}
