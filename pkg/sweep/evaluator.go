package sweep

import (
	"context"
	"strings"
	"time"

	"github.com/raykavin/rangerev/pkg/backtest"
	"github.com/raykavin/rangerev/pkg/config"
	"github.com/raykavin/rangerev/pkg/core"
)

// BacktestEvaluator bridges a parameter set to a full backtest run:
// dotted parameter paths become configuration overrides layered on top of
// the base overrides, and the resulting metrics feed the sweep.
type BacktestEvaluator struct {
	BaseOverrides map[string]any
	Exec          []core.Candle
	Primary       []core.Candle
	Secondary     []core.Candle
	InitialEquity float64
}

// Evaluate resolves the configuration for the parameter set and runs one
// deterministic backtest over the shared candle series
func (e *BacktestEvaluator) Evaluate(_ context.Context, params ParameterSet) (*Result, error) {
	overrides := cloneNested(e.BaseOverrides)
	for path, value := range params {
		setPath(overrides, path, value)
	}

	cfg, err := config.Resolve(overrides)
	if err != nil {
		return nil, err
	}

	result := backtest.Run(cfg, e.Exec, e.Primary, e.Secondary, e.InitialEquity)
	m := result.Metrics
	return &Result{
		Parameters: params,
		Metrics: map[string]float64{
			string(MetricNetPnL):       m.NetPnL,
			string(MetricWinRate):      m.WinRatePct,
			string(MetricPayoff):       m.PayoffRatio,
			string(MetricDrawdown):     m.MaxDrawdownPct,
			string(MetricTradeCount):   float64(m.Trades),
			string(MetricEndingEquity): m.EndingEquity,
		},
		Duration: time.Duration(0),
	}, nil
}

// setPath writes value into the nested override map at a dotted path,
// creating intermediate maps as needed
func setPath(m map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	for _, part := range parts[:len(parts)-1] {
		child, ok := m[part].(map[string]any)
		if !ok {
			child = make(map[string]any)
			m[part] = child
		}
		m = child
	}
	m[parts[len(parts)-1]] = value
}

func cloneNested(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		if nested, ok := v.(map[string]any); ok {
			out[k] = cloneNested(nested)
			continue
		}
		out[k] = v
	}
	return out
}
