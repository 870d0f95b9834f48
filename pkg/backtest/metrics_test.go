package backtest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raykavin/rangerev/pkg/core"
)

func tradeWithPnL(pnl float64) core.Trade {
	return core.Trade{NetPnL: pnl}
}

func TestComputeMetrics(t *testing.T) {
	trades := []core.Trade{tradeWithPnL(10), tradeWithPnL(20), tradeWithPnL(-5)}
	curve := []core.EquityPoint{
		{Equity: 1000},
		{Equity: 1010},
		{Equity: 1030},
		{Equity: 1025},
	}

	m := ComputeMetrics(trades, curve, 1000)

	assert.Equal(t, 3, m.Trades)
	assert.Equal(t, 2, m.Wins)
	assert.Equal(t, 1, m.Losses)
	assert.InDelta(t, 200.0/3.0, m.WinRatePct, 1e-9)
	assert.InDelta(t, 25, m.NetPnL, 1e-9)
	assert.InDelta(t, 30, m.GrossProfit, 1e-9)
	assert.InDelta(t, 5, m.GrossLoss, 1e-9)
	assert.InDelta(t, 25.0/3.0, m.AvgTradePnL, 1e-9)
	assert.InDelta(t, 3, m.PayoffRatio, 1e-9) // avg win 15 vs avg loss 5
	assert.Equal(t, 1025.0, m.EndingEquity)
}

func TestComputeMetrics_ZeroTrades(t *testing.T) {
	m := ComputeMetrics(nil, nil, 1000)

	assert.Zero(t, m.Trades)
	assert.Zero(t, m.WinRatePct)
	assert.Zero(t, m.PayoffRatio)
	assert.Equal(t, 1000.0, m.EndingEquity)
}

func TestComputeMetrics_MaxDrawdown(t *testing.T) {
	curve := []core.EquityPoint{
		{Equity: 100},
		{Equity: 120},
		{Equity: 90},
		{Equity: 110},
	}

	m := ComputeMetrics(nil, curve, 100)
	assert.InDelta(t, 25, m.MaxDrawdownPct, 1e-9) // 120 -> 90
	assert.Equal(t, 110.0, m.EndingEquity)
}

func TestComputeMetrics_MonotonicCurveHasNoDrawdown(t *testing.T) {
	curve := []core.EquityPoint{{Equity: 100}, {Equity: 105}, {Equity: 110}}
	assert.Zero(t, ComputeMetrics(nil, curve, 100).MaxDrawdownPct)
}

func TestResult_Summary(t *testing.T) {
	result := Result{Metrics: Metrics{Trades: 2, Wins: 1, Losses: 1, NetPnL: 15}}

	summary := result.Summary()
	assert.Contains(t, summary, "Trades")
	assert.Contains(t, summary, "Net PnL")
	assert.Contains(t, summary, "Max Drawdown")
}

func TestResult_WriteReturnHistogram(t *testing.T) {
	var sb strings.Builder

	empty := Result{}
	require.NoError(t, empty.WriteReturnHistogram(&sb))
	assert.Empty(t, sb.String())

	result := Result{Trades: []core.Trade{
		{NetPnL: 10, CloseTime: time.Unix(0, 0)},
		{NetPnL: -5, CloseTime: time.Unix(1, 0)},
		{NetPnL: 3, CloseTime: time.Unix(2, 0)},
	}}
	require.NoError(t, result.WriteReturnHistogram(&sb))
	assert.NotEmpty(t, sb.String())
}
