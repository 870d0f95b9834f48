package strategy

import (
	"fmt"
	"time"

	"github.com/raykavin/rangerev/pkg/core"
	"github.com/raykavin/rangerev/pkg/indicator"
	"github.com/raykavin/rangerev/pkg/signal"
	"github.com/raykavin/rangerev/pkg/volprofile"
)

// BuildSnapshot derives the feature vector for exec[index]. The primary
// and secondary series are higher-timeframe candles; only bars at or
// before the execution bar's time contribute to the range, so the
// snapshot never looks into the future.
//
// Indexing outside the execution series is a programmer error and panics.
// Per-candle feature overrides, when present, replace the computed values;
// the override path is only entered when the candle carries one.
func (s *RangeReversal) BuildSnapshot(exec, primary, secondary []core.Candle, index int) core.Snapshot {
	if index < 0 || index >= len(exec) {
		panic(fmt.Sprintf("strategy: snapshot index %d out of range [0,%d)", index, len(exec)))
	}

	bar := exec[index]
	snap := core.Snapshot{
		Time:  bar.Time,
		Price: bar.Close,
		Low:   bar.Low,
		High:  bar.High,
	}

	snap.Range = s.rangeContext(primary, secondary, bar.Time, bar.Overrides)

	window := exec[:index+1]
	sig := s.cfg.Signal

	wt1, _ := indicator.WaveTrend(window, sig.ChannelLength, sig.AverageLength, sig.SignalLength)
	snap.BullishDivergence = signal.BullishDivergence(window, wt1, index, sig.SwingLookback, sig.MaxBarsAfterDivergence)
	snap.BearishDivergence = signal.BearishDivergence(window, wt1, index, sig.SwingLookback, sig.MaxBarsAfterDivergence)

	moneyFlow := indicator.MoneyFlow(window, sig.MoneyFlowPeriod)
	snap.MoneyFlowSlope = indicator.SlopeAt(moneyFlow, index, sig.MoneyFlowSlopeLookback)

	snap.BullishSFP = signal.BullishSFP(window, index, sig.SfpLookbackBars)
	snap.BearishSFP = signal.BearishSFP(window, index, sig.SfpLookbackBars)

	if ov := bar.Overrides; ov != nil {
		applyOverrides(&snap, ov)
	}

	snap.RecentLowBrokeVAL, snap.RecentHighBrokeVAH = s.recentExcursions(window, snap.Range.Effective)
	return snap
}

// rangeContext computes the merged range for the bar, honoring forced
// levels when the bar carries a levels override.
func (s *RangeReversal) rangeContext(primary, secondary []core.Candle, at time.Time, ov *core.FeatureOverrides) core.RangeContext {
	if ov != nil && ov.Levels != nil {
		aligned := true
		if ov.IsAligned != nil {
			aligned = *ov.IsAligned
		}
		return volprofile.ForcedRangeContext(*ov.Levels, aligned)
	}

	rng := s.cfg.Range
	ctx := volprofile.BuildRangeContext(
		windowAtOrBefore(primary, at, rng.PrimaryLookbackBars),
		windowAtOrBefore(secondary, at, rng.SecondaryLookbackBars),
		rng.Bins, rng.ValueAreaPct, rng.MinOverlapPct,
	)
	if ov != nil && ov.IsAligned != nil {
		ctx.IsAligned = *ov.IsAligned
	}
	return ctx
}

// recentExcursions reports whether any bar within the excursion lookback
// (including the current bar) traded through the effective VAL or VAH.
func (s *RangeReversal) recentExcursions(window []core.Candle, effective core.ValueAreaLevels) (brokeVAL, brokeVAH bool) {
	lookback := s.cfg.Signal.PriceExcursionLookbackBars
	start := len(window) - lookback
	if start < 0 {
		start = 0
	}
	for _, c := range window[start:] {
		if c.Low < effective.VAL {
			brokeVAL = true
		}
		if c.High > effective.VAH {
			brokeVAH = true
		}
	}
	return brokeVAL, brokeVAH
}

// windowAtOrBefore returns the most recent n candles with time at or
// before t. The series is time-ordered, so a backward scan suffices.
func windowAtOrBefore(candles []core.Candle, t time.Time, n int) []core.Candle {
	end := len(candles)
	for end > 0 && candles[end-1].Time.After(t) {
		end--
	}
	start := end - n
	if start < 0 {
		start = 0
	}
	return candles[start:end]
}

func applyOverrides(snap *core.Snapshot, ov *core.FeatureOverrides) {
	if ov.BullishDivergence != nil {
		snap.BullishDivergence = *ov.BullishDivergence
	}
	if ov.BearishDivergence != nil {
		snap.BearishDivergence = *ov.BearishDivergence
	}
	if ov.BullishSFP != nil {
		snap.BullishSFP = *ov.BullishSFP
	}
	if ov.BearishSFP != nil {
		snap.BearishSFP = *ov.BearishSFP
	}
	if ov.MoneyFlowSlope != nil {
		snap.MoneyFlowSlope = *ov.MoneyFlowSlope
	}
}
