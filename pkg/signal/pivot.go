// Package signal detects reversal conditions on a candle series:
// pivot-based price/oscillator divergence and swing-failure patterns.
package signal

import (
	"github.com/raykavin/rangerev/pkg/core"
)

// Pivot marks a confirmed swing extreme in a candle series
type Pivot struct {
	Index int
	Price float64
}

// PivotLows returns the confirmed pivot lows of the series: bars whose low
// is strictly below the lows of all `left` bars before and `right` bars
// after. Bars too close to either edge are never pivots.
func PivotLows(candles []core.Candle, left, right int) []Pivot {
	if left < 1 || right < 1 || len(candles) < left+right+1 {
		return nil
	}
	var out []Pivot
	for i := left; i < len(candles)-right; i++ {
		if isPivotLow(candles, i, left, right) {
			out = append(out, Pivot{Index: i, Price: candles[i].Low})
		}
	}
	return out
}

// PivotHighs is the mirror of PivotLows on bar highs
func PivotHighs(candles []core.Candle, left, right int) []Pivot {
	if left < 1 || right < 1 || len(candles) < left+right+1 {
		return nil
	}
	var out []Pivot
	for i := left; i < len(candles)-right; i++ {
		if isPivotHigh(candles, i, left, right) {
			out = append(out, Pivot{Index: i, Price: candles[i].High})
		}
	}
	return out
}

func isPivotLow(candles []core.Candle, i, left, right int) bool {
	for j := i - left; j <= i+right; j++ {
		if j == i {
			continue
		}
		if candles[j].Low <= candles[i].Low {
			return false
		}
	}
	return true
}

func isPivotHigh(candles []core.Candle, i, left, right int) bool {
	for j := i - left; j <= i+right; j++ {
		if j == i {
			continue
		}
		if candles[j].High >= candles[i].High {
			return false
		}
	}
	return true
}
