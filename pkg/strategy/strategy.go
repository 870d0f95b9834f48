// Package strategy implements the range-reversal trading strategy: a
// per-bar feature snapshot built from the range analyzer and signal
// detector, an entry gate evaluation with reason codes for every failed
// gate, and the decision state machine shared by backtesting and live
// execution.
package strategy

import (
	"github.com/raykavin/rangerev/pkg/config"
	"github.com/raykavin/rangerev/pkg/core"
)

// RangeReversal trades reversals against a volume-profile fair-value
// range: longs below the value-area low, shorts above the value-area
// high, confirmed by divergence, money flow and swing-failure patterns.
// It is stateless; the open position is supplied by the caller per bar.
type RangeReversal struct {
	cfg config.Config
}

// compile-time contract check
var _ core.Strategy = (*RangeReversal)(nil)

// NewRangeReversal creates the strategy for a resolved configuration
func NewRangeReversal(cfg config.Config) *RangeReversal {
	return &RangeReversal{cfg: cfg}
}

// Name identifies the strategy
func (s *RangeReversal) Name() string {
	return "range-reversal"
}

// Config returns the resolved configuration the strategy was built with
func (s *RangeReversal) Config() config.Config {
	return s.cfg
}

// WarmupPeriod is the number of execution bars needed before every
// indicator the gates read is fully formed
func (s *RangeReversal) WarmupPeriod() int {
	sig := s.cfg.Signal
	warmup := sig.ChannelLength + sig.AverageLength + sig.SignalLength
	if mf := sig.MoneyFlowPeriod + sig.MoneyFlowSlopeLookback; mf > warmup {
		warmup = mf
	}
	if sw := 2*sig.SwingLookback + 1; sw > warmup {
		warmup = sw
	}
	return warmup
}
