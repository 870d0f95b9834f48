package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raykavin/rangerev/pkg/config"
	"github.com/raykavin/rangerev/pkg/core"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Signal.RequireDivergence = true
	cfg.Signal.RequireSfp = true
	return cfg
}

// alignedSnapshot passes every long gate: price below VAL with all
// confirmations present.
func alignedSnapshot() core.Snapshot {
	levels := core.ValueAreaLevels{VAL: 101, VAH: 110, POC: 105.5}
	return core.Snapshot{
		Time:              time.Unix(0, 0),
		Price:             98,
		Low:               96.5,
		High:              99.5,
		Range:             core.RangeContext{Primary: levels, Secondary: levels, Effective: levels, OverlapRatio: 1, IsAligned: true},
		BullishDivergence: true,
		MoneyFlowSlope:    1,
		BullishSFP:        true,
	}
}

func TestEvaluateEntry_LongConfluence(t *testing.T) {
	s := NewRangeReversal(testConfig())

	entry, diag := s.EvaluateEntry(alignedSnapshot())
	assert.Equal(t, core.SideLong, entry.Signal)
	assert.Equal(t, []core.Reason{core.ReasonLongConfluence}, entry.Reasons)
	assert.Empty(t, diag.LongFailures)
	assert.NotEmpty(t, diag.ShortFailures)
}

func TestEvaluateEntry_ShortConfluence(t *testing.T) {
	s := NewRangeReversal(testConfig())

	snap := alignedSnapshot()
	snap.Price = 112
	snap.BullishDivergence = false
	snap.BullishSFP = false
	snap.BearishDivergence = true
	snap.BearishSFP = true
	snap.MoneyFlowSlope = -1

	entry, _ := s.EvaluateEntry(snap)
	assert.Equal(t, core.SideShort, entry.Signal)
	assert.Equal(t, []core.Reason{core.ReasonShortConfluence}, entry.Reasons)
}

func TestEvaluateEntry_MisalignedRangeBlocksBothSides(t *testing.T) {
	s := NewRangeReversal(testConfig())

	snap := alignedSnapshot()
	snap.Range.IsAligned = false

	entry, diag := s.EvaluateEntry(snap)
	assert.Equal(t, core.SideNone, entry.Signal)
	assert.Contains(t, diag.LongFailures, core.ReasonRangeNotAligned)
	assert.Contains(t, diag.ShortFailures, core.ReasonRangeNotAligned)

	// The merged reason list carries the shared failure exactly once
	count := 0
	for _, r := range entry.Reasons {
		if r == core.ReasonRangeNotAligned {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestEvaluateEntry_EveryFailedGateIsNamed(t *testing.T) {
	s := NewRangeReversal(testConfig())

	snap := alignedSnapshot()
	snap.Price = 105 // inside the value area
	snap.BullishDivergence = false
	snap.MoneyFlowSlope = 0
	snap.BullishSFP = false

	entry, diag := s.EvaluateEntry(snap)
	assert.Equal(t, core.SideNone, entry.Signal)
	assert.Equal(t, []core.Reason{
		core.ReasonLongPriceNotBelowVAL,
		core.ReasonLongMissingDivergence,
		core.ReasonLongMoneyFlowNotPositive,
		core.ReasonLongMissingSFP,
	}, diag.LongFailures)
}

func TestEvaluateEntry_OptionalGatesCanBeDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Signal.RequireDivergence = false
	cfg.Signal.RequireSfp = false
	s := NewRangeReversal(cfg)

	snap := alignedSnapshot()
	snap.BullishDivergence = false
	snap.BullishSFP = false

	entry, _ := s.EvaluateEntry(snap)
	assert.Equal(t, core.SideLong, entry.Signal)
}

func TestEvaluateEntry_ArmedReentry(t *testing.T) {
	cfg := testConfig()
	cfg.Signal.AllowArmedReentry = true
	cfg.Signal.ArmedReentryMaxDistancePct = 0.15
	s := NewRangeReversal(cfg)

	// VAL=101, width 9: re-entry allowed up to 1.35 above VAL
	snap := alignedSnapshot()
	snap.Price = 102
	snap.RecentLowBrokeVAL = true

	entry, _ := s.EvaluateEntry(snap)
	assert.Equal(t, core.SideLong, entry.Signal)
}

func TestEvaluateEntry_ArmedReentryTooFar(t *testing.T) {
	cfg := testConfig()
	cfg.Signal.AllowArmedReentry = true
	cfg.Signal.ArmedReentryMaxDistancePct = 0.15
	s := NewRangeReversal(cfg)

	snap := alignedSnapshot()
	snap.Price = 103 // 2.0 above VAL, beyond the 1.35 budget
	snap.RecentLowBrokeVAL = true

	entry, diag := s.EvaluateEntry(snap)
	assert.Equal(t, core.SideNone, entry.Signal)
	assert.Contains(t, diag.LongFailures, core.ReasonLongReentryTooFar)
}

func TestEvaluateEntry_ArmedReentryNeedsRecentSweep(t *testing.T) {
	cfg := testConfig()
	cfg.Signal.AllowArmedReentry = true
	s := NewRangeReversal(cfg)

	snap := alignedSnapshot()
	snap.Price = 102
	snap.RecentLowBrokeVAL = false

	entry, diag := s.EvaluateEntry(snap)
	assert.Equal(t, core.SideNone, entry.Signal)
	assert.Contains(t, diag.LongFailures, core.ReasonLongPriceNotBelowVAL)
}

func TestEvaluate_EnterIntent(t *testing.T) {
	cfg := testConfig()
	cfg.Risk.SlBufferPct = 0.001
	cfg.Exits.TP1RangeLevel = config.LevelPOC
	cfg.Exits.TP2RangeLevel = config.LevelVAH
	s := NewRangeReversal(cfg)

	decision := s.Evaluate(alignedSnapshot(), nil)
	assert.Equal(t, 1.0, decision.Confidence)

	enter, ok := decision.Enter()
	require.True(t, ok)
	assert.Equal(t, core.SideLong, enter.Side)
	assert.Equal(t, 98.0, enter.Price)
	assert.InDelta(t, 96.5*(1-0.001), enter.Stop, 1e-9)
	assert.Equal(t, 105.5, enter.TP1Price)
	assert.Equal(t, 110.0, enter.TP2Price)
}

func TestEvaluate_NoSignalHolds(t *testing.T) {
	s := NewRangeReversal(testConfig())

	snap := alignedSnapshot()
	snap.Range.IsAligned = false

	decision := s.Evaluate(snap, nil)
	assert.Zero(t, decision.Confidence)
	_, ok := decision.Enter()
	assert.False(t, ok)
	require.Len(t, decision.Intents, 1)
	assert.Equal(t, core.IntentHold, decision.Intents[0].Kind)
	assert.NotEmpty(t, decision.Reasons)
}

func TestEvaluate_OpenPositionHolds(t *testing.T) {
	s := NewRangeReversal(testConfig())
	pos := &core.Position{Side: core.SideLong}

	// Same-side signal with an open position must not re-enter
	decision := s.Evaluate(alignedSnapshot(), pos)
	_, ok := decision.Enter()
	assert.False(t, ok)
	require.Len(t, decision.Intents, 1)
	assert.Equal(t, core.IntentHold, decision.Intents[0].Kind)
}

func TestEvaluate_OppositeSignalClosesRunner(t *testing.T) {
	s := NewRangeReversal(testConfig())
	pos := &core.Position{Side: core.SideShort}

	decision := s.Evaluate(alignedSnapshot(), pos)
	closeIntent, ok := decision.Close()
	require.True(t, ok)
	assert.Equal(t, core.SideShort, closeIntent.Side)
	assert.Equal(t, 98.0, closeIntent.Price)
}

func TestEvaluate_OppositeSignalExitCanBeDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Exits.RunnerExitOnOppositeSignal = false
	s := NewRangeReversal(cfg)
	pos := &core.Position{Side: core.SideShort}

	decision := s.Evaluate(alignedSnapshot(), pos)
	_, ok := decision.Close()
	assert.False(t, ok)
}

func TestResolveTakeProfitLevels_LongOrdering(t *testing.T) {
	effective := core.ValueAreaLevels{VAL: 100, VAH: 110, POC: 104}
	exits := config.Exits{TP1RangeLevel: config.LevelVAH, TP2RangeLevel: config.LevelMid}

	// Misordered configuration is normalized: nearer target first
	tp1, tp2 := ResolveTakeProfitLevels(core.SideLong, effective, exits)
	assert.Equal(t, 105.0, tp1)
	assert.Equal(t, 110.0, tp2)
}

func TestResolveTakeProfitLevels_ShortMirrorsLevels(t *testing.T) {
	effective := core.ValueAreaLevels{VAL: 100, VAH: 110, POC: 104}
	exits := config.Exits{TP1RangeLevel: config.LevelMid, TP2RangeLevel: config.LevelVAH}

	// For shorts the vah target mirrors to val and targets descend
	tp1, tp2 := ResolveTakeProfitLevels(core.SideShort, effective, exits)
	assert.Equal(t, 105.0, tp1)
	assert.Equal(t, 100.0, tp2)
}

func TestBuildSnapshot_PanicsOnBadIndex(t *testing.T) {
	s := NewRangeReversal(testConfig())
	candles := []core.Candle{{Time: time.Unix(0, 0), Close: 100, High: 101, Low: 99, Volume: 1}}

	assert.Panics(t, func() { s.BuildSnapshot(candles, candles, candles, 1) })
	assert.Panics(t, func() { s.BuildSnapshot(candles, candles, candles, -1) })
}

func TestBuildSnapshot_HonorsOverrides(t *testing.T) {
	s := NewRangeReversal(testConfig())

	levels := core.ValueAreaLevels{VAL: 101, VAH: 110, POC: 105.5}
	aligned := true
	bull := true
	slope := 2.5
	candles := []core.Candle{{
		Time: time.Unix(0, 0), Open: 99, High: 99.5, Low: 96.5, Close: 98, Volume: 100,
		Overrides: &core.FeatureOverrides{
			Levels:            &levels,
			IsAligned:         &aligned,
			BullishDivergence: &bull,
			BullishSFP:        &bull,
			MoneyFlowSlope:    &slope,
		},
	}}

	snap := s.BuildSnapshot(candles, candles, candles, 0)
	assert.Equal(t, levels, snap.Range.Effective)
	assert.True(t, snap.Range.IsAligned)
	assert.True(t, snap.BullishDivergence)
	assert.True(t, snap.BullishSFP)
	assert.False(t, snap.BearishDivergence)
	assert.Equal(t, 2.5, snap.MoneyFlowSlope)
	assert.Equal(t, 98.0, snap.Price)
}

func TestBuildSnapshot_ExcursionsUseEffectiveLevels(t *testing.T) {
	s := NewRangeReversal(testConfig())

	levels := core.ValueAreaLevels{VAL: 101, VAH: 110, POC: 105.5}
	candles := []core.Candle{
		{Time: time.Unix(0, 0), Open: 100, High: 102, Low: 100.5, Close: 101.5, Volume: 100},
		{Time: time.Unix(900, 0), Open: 101, High: 111, Low: 100.9, Close: 105, Volume: 100},
		{Time: time.Unix(1800, 0), Open: 105, High: 106, Low: 104, Close: 105, Volume: 100,
			Overrides: &core.FeatureOverrides{Levels: &levels}},
	}

	snap := s.BuildSnapshot(candles, candles, candles, 2)
	assert.True(t, snap.RecentLowBrokeVAL, "bar lows traded below VAL=101")
	assert.True(t, snap.RecentHighBrokeVAH, "bar highs traded above VAH=110")
}

func TestWarmupPeriod(t *testing.T) {
	cfg := testConfig()
	cfg.Signal.ChannelLength = 9
	cfg.Signal.AverageLength = 12
	cfg.Signal.SignalLength = 3
	cfg.Signal.MoneyFlowPeriod = 14
	cfg.Signal.MoneyFlowSlopeLookback = 3
	cfg.Signal.SwingLookback = 3

	s := NewRangeReversal(cfg)
	assert.Equal(t, 24, s.WarmupPeriod())
	assert.Equal(t, "range-reversal", s.Name())
}
