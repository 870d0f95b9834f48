package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func sqliteStore(t *testing.T) RunStorage {
	t.Helper()
	store, err := FromSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLStorage_RoundTrip(t *testing.T) {
	store := sqliteStore(t)

	first := &Record{Label: "baseline", Trades: 5, NetPnL: 42}
	second := &Record{Label: "tuned", Trades: 12, NetPnL: 80}
	require.NoError(t, store.SaveRun(first))
	require.NoError(t, store.SaveRun(second))

	assert.NotZero(t, first.ID)
	assert.NotZero(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)

	records, err := store.Runs()
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestSQLStorage_Filters(t *testing.T) {
	store := sqliteStore(t)

	require.NoError(t, store.SaveRun(&Record{Label: "baseline", Trades: 5}))
	require.NoError(t, store.SaveRun(&Record{Label: "tuned", Trades: 12}))
	require.NoError(t, store.SaveRun(&Record{Label: "tuned", Trades: 2}))

	records, err := store.Runs(WithLabel("tuned"), WithMinTrades(10))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 12, records[0].Trades)
}

func TestSQLStorage_RunsWithQuery(t *testing.T) {
	store := sqliteStore(t)

	require.NoError(t, store.SaveRun(&Record{Label: "a", NetPnL: -10}))
	require.NoError(t, store.SaveRun(&Record{Label: "b", NetPnL: 30}))

	sql, ok := store.(*SQLStorage)
	require.True(t, ok)

	records, err := sql.RunsWithQuery(func(db *gorm.DB) *gorm.DB {
		return db.Where("net_pnl > ?", 0)
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "b", records[0].Label)
}
