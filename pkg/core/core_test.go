package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReason_RoundTrip(t *testing.T) {
	for reason, code := range reasonCodes {
		assert.Equal(t, code, reason.String())
		assert.Equal(t, reason, ParseReason(code))
	}

	assert.Equal(t, ReasonUnknown, ParseReason("definitely_not_a_code"))
	assert.Equal(t, "unknown", Reason(9999).String())
}

func TestReasonCodes(t *testing.T) {
	codes := ReasonCodes([]Reason{ReasonRangeNotAligned, ReasonLongConfluence})
	assert.Equal(t, []string{"range_not_aligned", "long_confluence"}, codes)
}

func TestSide_Opposite(t *testing.T) {
	assert.Equal(t, SideShort, SideLong.Opposite())
	assert.Equal(t, SideLong, SideShort.Opposite())
	assert.Equal(t, SideNone, SideNone.Opposite())
}

func TestPosition_ApplyExit(t *testing.T) {
	pos := &Position{Quantity: 10, RemainingQuantity: 10}

	require.False(t, pos.ApplyExit(4))
	assert.Equal(t, 6.0, pos.RemainingQuantity)

	require.True(t, pos.ApplyExit(6))
	assert.Zero(t, pos.RemainingQuantity)
}

func TestPosition_ApplyExitClampsResidue(t *testing.T) {
	quantity := 10.0 / 1.5
	pos := &Position{Quantity: quantity, RemainingQuantity: quantity}

	pos.ApplyExit(quantity * 0.5)
	require.True(t, pos.ApplyExit(quantity*0.5))
	assert.Zero(t, pos.RemainingQuantity)
}

func TestDirectionalPnL(t *testing.T) {
	assert.InDelta(t, 20, DirectionalPnL(SideLong, 100, 110, 2, 1), 1e-9)
	assert.InDelta(t, -20, DirectionalPnL(SideLong, 100, 90, 2, 1), 1e-9)
	assert.InDelta(t, 20, DirectionalPnL(SideShort, 100, 90, 2, 1), 1e-9)
	assert.InDelta(t, -20, DirectionalPnL(SideShort, 100, 110, 2, 1), 1e-9)
	assert.InDelta(t, 200, DirectionalPnL(SideLong, 100, 110, 2, 10), 1e-9)
}

func TestValueAreaLevels(t *testing.T) {
	levels := ValueAreaLevels{VAL: 100, VAH: 110, POC: 104}

	assert.Equal(t, 10.0, levels.Width())
	assert.Equal(t, 105.0, levels.Midpoint())
	assert.False(t, levels.IsZero())
	assert.True(t, ValueAreaLevels{}.IsZero())
}

func TestStrategyDecision_IntentFinders(t *testing.T) {
	decision := StrategyDecision{Intents: []Intent{
		{Kind: IntentHold},
		{Kind: IntentEnter, Side: SideLong, Price: 98},
	}}

	enter, ok := decision.Enter()
	require.True(t, ok)
	assert.Equal(t, SideLong, enter.Side)

	_, ok = decision.Close()
	assert.False(t, ok)
}

func TestSeries_Crossover(t *testing.T) {
	fast := Series[float64]{1, 3}
	slow := Series[float64]{2, 2}

	assert.True(t, fast.Crossover(slow))
	assert.False(t, slow.Crossover(fast))
	assert.True(t, slow.Crossunder(fast))
	assert.True(t, fast.Cross(slow))
}

func TestSeries_Accessors(t *testing.T) {
	s := Series[float64]{1, 2, 3}

	assert.Equal(t, 3, s.Length())
	assert.Equal(t, 3.0, s.Last(0))
	assert.Equal(t, 2.0, s.Last(1))
	assert.Equal(t, Series[float64]{2, 3}, s.LastValues(2))
	assert.Equal(t, s, s.LastValues(10))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(0))
	assert.True(t, IsFinite(-1.5))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
	assert.False(t, IsFinite(math.Inf(-1)))
}

func TestCandle_TypicalPrice(t *testing.T) {
	c := Candle{High: 110, Low: 100, Close: 102}
	assert.InDelta(t, 104, c.TypicalPrice(), 1e-9)
}
