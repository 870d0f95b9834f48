package backtest

import (
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/raykavin/rangerev/pkg/core"
)

// Metrics is a pure aggregation over the trade ledger and equity curve.
// It is always recomputable from its inputs and never maintained
// incrementally.
type Metrics struct {
	Trades         int     `json:"trades"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	WinRatePct     float64 `json:"winRatePct"`
	NetPnL         float64 `json:"netPnl"`
	GrossProfit    float64 `json:"grossProfit"`
	GrossLoss      float64 `json:"grossLoss"`
	AvgTradePnL    float64 `json:"avgTradePnl"`
	PayoffRatio    float64 `json:"payoffRatio"`
	MaxDrawdownPct float64 `json:"maxDrawdownPct"`
	EndingEquity   float64 `json:"endingEquity"`
}

// ComputeMetrics folds the closed trades and equity curve into summary
// statistics. Zero trades is a valid result, not an error.
func ComputeMetrics(trades []core.Trade, curve []core.EquityPoint, initialEquity float64) Metrics {
	m := Metrics{
		Trades:       len(trades),
		EndingEquity: initialEquity,
	}
	if len(curve) > 0 {
		m.EndingEquity = curve[len(curve)-1].Equity
	}
	m.MaxDrawdownPct = maxDrawdownPct(curve)

	if len(trades) == 0 {
		return m
	}

	pnls := lo.Map(trades, func(t core.Trade, _ int) float64 { return t.NetPnL })
	var wins, losses []float64
	for _, pnl := range pnls {
		m.NetPnL += pnl
		if pnl > 0 {
			wins = append(wins, pnl)
			m.GrossProfit += pnl
		} else {
			losses = append(losses, pnl)
			m.GrossLoss += -pnl
		}
	}
	m.Wins = len(wins)
	m.Losses = len(losses)
	m.WinRatePct = float64(m.Wins) / float64(m.Trades) * 100
	m.AvgTradePnL = stat.Mean(pnls, nil)

	if len(wins) > 0 && len(losses) > 0 {
		avgLoss := stat.Mean(losses, nil)
		if avgLoss != 0 {
			m.PayoffRatio = math.Abs(stat.Mean(wins, nil) / avgLoss)
		}
	}
	return m
}

// maxDrawdownPct is the largest peak-to-trough percentage decline of the
// equity curve. Empty or monotonically non-decreasing curves yield 0.
func maxDrawdownPct(curve []core.EquityPoint) float64 {
	var peak, maxDD float64
	for i, p := range curve {
		if i == 0 || p.Equity > peak {
			peak = p.Equity
		}
		if peak > 0 {
			if dd := (peak - p.Equity) / peak * 100; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}
