package backtest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"
)

// Summary formats the result's metrics as a text table
func (r Result) Summary() string {
	m := r.Metrics
	sb := &strings.Builder{}
	table := tablewriter.NewWriter(sb)

	data := [][]string{
		{"Trades", strconv.Itoa(m.Trades)},
		{"Win", strconv.Itoa(m.Wins)},
		{"Loss", strconv.Itoa(m.Losses)},
		{"% Win", fmt.Sprintf("%.1f", m.WinRatePct)},
		{"Payoff", fmt.Sprintf("%.2f", m.PayoffRatio)},
		{"Net PnL", fmt.Sprintf("%.4f", m.NetPnL)},
		{"Gross Profit", fmt.Sprintf("%.4f", m.GrossProfit)},
		{"Gross Loss", fmt.Sprintf("%.4f", m.GrossLoss)},
		{"Max Drawdown", fmt.Sprintf("%.2f %%", m.MaxDrawdownPct)},
		{"Ending Equity", fmt.Sprintf("%.4f", m.EndingEquity)},
	}

	table.AppendBulk(data)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.Render()

	return sb.String()
}

// WriteReturnHistogram renders the distribution of per-trade returns.
// Runs with no trades write nothing.
func (r Result) WriteReturnHistogram(w io.Writer) error {
	if len(r.Trades) == 0 {
		return nil
	}
	returns := make([]float64, len(r.Trades))
	for i, t := range r.Trades {
		returns[i] = t.NetPnL
	}
	hist := histogram.Hist(15, returns)
	return histogram.Fprint(w, hist, histogram.Linear(10))
}
