package config

import (
	"fmt"
	"strings"
)

// ValidationError reports a single invalid field, naming its path
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors aggregates every invalid field found during validation
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Validate checks every field against its schema constraints and returns
// a ValidationErrors naming each offending path, or nil.
func (c Config) Validate() error {
	var errs ValidationErrors
	fail := func(path, format string, args ...any) {
		errs = append(errs, ValidationError{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	// Range
	if c.Range.PrimaryLookbackBars < 2 {
		fail("range.primaryLookbackBars", "must be at least 2, got %d", c.Range.PrimaryLookbackBars)
	}
	if c.Range.SecondaryLookbackBars < 2 {
		fail("range.secondaryLookbackBars", "must be at least 2, got %d", c.Range.SecondaryLookbackBars)
	}
	if c.Range.Bins < 1 {
		fail("range.bins", "must be at least 1, got %d", c.Range.Bins)
	}
	if c.Range.ValueAreaPct <= 0 || c.Range.ValueAreaPct > 1 {
		fail("range.valueAreaPct", "must be in (0, 1], got %v", c.Range.ValueAreaPct)
	}
	if c.Range.MinOverlapPct < 0 || c.Range.MinOverlapPct > 1 {
		fail("range.minOverlapPct", "must be in [0, 1], got %v", c.Range.MinOverlapPct)
	}

	// Signal
	for _, check := range []struct {
		path  string
		value int
	}{
		{"signal.channelLength", c.Signal.ChannelLength},
		{"signal.averageLength", c.Signal.AverageLength},
		{"signal.signalLength", c.Signal.SignalLength},
		{"signal.moneyFlowPeriod", c.Signal.MoneyFlowPeriod},
		{"signal.moneyFlowSlopeLookback", c.Signal.MoneyFlowSlopeLookback},
		{"signal.swingLookback", c.Signal.SwingLookback},
		{"signal.sfpLookbackBars", c.Signal.SfpLookbackBars},
	} {
		if check.value < 1 {
			fail(check.path, "must be at least 1, got %d", check.value)
		}
	}
	if c.Signal.MaxBarsAfterDivergence < 0 {
		fail("signal.maxBarsAfterDivergence", "must not be negative, got %d", c.Signal.MaxBarsAfterDivergence)
	}
	if c.Signal.ArmedReentryMaxDistancePct < 0 || c.Signal.ArmedReentryMaxDistancePct > 1 {
		fail("signal.armedReentryMaxDistancePct", "must be in [0, 1], got %v", c.Signal.ArmedReentryMaxDistancePct)
	}
	if c.Signal.PriceExcursionLookbackBars < 1 {
		fail("signal.priceExcursionLookbackBars", "must be at least 1, got %d", c.Signal.PriceExcursionLookbackBars)
	}

	// Risk
	if c.Risk.RiskPctPerTrade <= 0 || c.Risk.RiskPctPerTrade > 1 {
		fail("risk.riskPctPerTrade", "must be in (0, 1], got %v", c.Risk.RiskPctPerTrade)
	}
	if c.Risk.Leverage <= 0 {
		fail("risk.leverage", "must be positive, got %v", c.Risk.Leverage)
	}
	if c.Risk.MaxNotionalPctEquity <= 0 {
		fail("risk.maxNotionalPctEquity", "must be positive, got %v", c.Risk.MaxNotionalPctEquity)
	}
	if c.Risk.ContractMultiplier <= 0 {
		fail("risk.contractMultiplier", "must be positive, got %v", c.Risk.ContractMultiplier)
	}
	if c.Risk.LotStep < 0 {
		fail("risk.lotStep", "must not be negative, got %v", c.Risk.LotStep)
	}
	if c.Risk.FeeRate < 0 || c.Risk.FeeRate > 0.1 {
		fail("risk.feeRate", "must be in [0, 0.1], got %v", c.Risk.FeeRate)
	}
	if c.Risk.SlBufferPct < 0 || c.Risk.SlBufferPct > 0.2 {
		fail("risk.slBufferPct", "must be in [0, 0.2], got %v", c.Risk.SlBufferPct)
	}

	// Exits
	if !validRangeLevel(c.Exits.TP1RangeLevel) {
		fail("exits.tp1RangeLevel", "must be one of mid, poc, val, vah, got %q", c.Exits.TP1RangeLevel)
	}
	if !validRangeLevel(c.Exits.TP2RangeLevel) {
		fail("exits.tp2RangeLevel", "must be one of mid, poc, val, vah, got %q", c.Exits.TP2RangeLevel)
	}
	if c.Exits.TP1SizePct <= 0 || c.Exits.TP1SizePct > 1 {
		fail("exits.tp1SizePct", "must be in (0, 1], got %v", c.Exits.TP1SizePct)
	}
	if c.Exits.TP2SizePct <= 0 || c.Exits.TP2SizePct > 1 {
		fail("exits.tp2SizePct", "must be in (0, 1], got %v", c.Exits.TP2SizePct)
	}
	if c.Exits.TP1SizePct+c.Exits.TP2SizePct > 1+1e-9 {
		fail("exits.tp2SizePct", "tp1SizePct and tp2SizePct must not sum above 1, got %v", c.Exits.TP1SizePct+c.Exits.TP2SizePct)
	}
	if c.Exits.CooldownBars < 0 {
		fail("exits.cooldownBars", "must not be negative, got %d", c.Exits.CooldownBars)
	}

	// Fill model
	if c.FillModel.IntrabarPriority != StopFirst && c.FillModel.IntrabarPriority != TargetFirst {
		fail("fillModel.intrabarPriority", "must be %q or %q, got %q", StopFirst, TargetFirst, c.FillModel.IntrabarPriority)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validRangeLevel(l RangeLevel) bool {
	switch l {
	case LevelMid, LevelPOC, LevelVAL, LevelVAH:
		return true
	}
	return false
}
