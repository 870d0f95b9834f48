package signal

import (
	"github.com/raykavin/rangerev/pkg/core"
)

// BullishDivergence reports whether the two most recent confirmed price-low
// pivots up to index form a bullish divergence: price makes a lower low
// while the oscillator makes a higher low, with the later pivot no more
// than maxBarsAfter bars before index. Fewer than two qualifying pivots
// means no divergence.
func BullishDivergence(candles []core.Candle, oscillator []float64, index, swingLookback, maxBarsAfter int) bool {
	if index < 0 || index >= len(candles) || index >= len(oscillator) {
		return false
	}
	pivots := PivotLows(candles[:index+1], swingLookback, swingLookback)
	if len(pivots) < 2 {
		return false
	}
	earlier, later := pivots[len(pivots)-2], pivots[len(pivots)-1]
	if index-later.Index > maxBarsAfter {
		return false
	}
	return later.Price < earlier.Price &&
		oscillator[later.Index] > oscillator[earlier.Index]
}

// BearishDivergence is the structural mirror of BullishDivergence: price
// makes a higher high while the oscillator makes a lower high.
func BearishDivergence(candles []core.Candle, oscillator []float64, index, swingLookback, maxBarsAfter int) bool {
	if index < 0 || index >= len(candles) || index >= len(oscillator) {
		return false
	}
	pivots := PivotHighs(candles[:index+1], swingLookback, swingLookback)
	if len(pivots) < 2 {
		return false
	}
	earlier, later := pivots[len(pivots)-2], pivots[len(pivots)-1]
	if index-later.Index > maxBarsAfter {
		return false
	}
	return later.Price > earlier.Price &&
		oscillator[later.Index] < oscillator[earlier.Index]
}
