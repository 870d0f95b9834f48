package indicator

import (
	"math"

	"github.com/raykavin/rangerev/pkg/core"
)

// MoneyFlow computes a rolling volume-weighted intrabar position
// oscillator. Each bar contributes its volume signed by where the close
// sits inside the bar's range; the oscillator is the rolling sum of those
// contributions normalized by the rolling volume.
// Bars before a full window and windows with zero accumulated volume are
// NaN; the function never divides by zero.
func MoneyFlow(candles []core.Candle, period int) core.Series[float64] {
	n := len(candles)
	out := make(core.Series[float64], n)
	if period <= 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}

	signed := make([]float64, n)
	for i, c := range candles {
		barRange := c.High - c.Low
		if barRange <= 0 {
			signed[i] = 0
			continue
		}
		// (close-low)-(high-close) over the bar range, in [-1, 1]
		position := ((c.Close - c.Low) - (c.High - c.Close)) / barRange
		signed[i] = position * c.Volume
	}

	var sumSigned, sumVolume float64
	for i := 0; i < n; i++ {
		sumSigned += signed[i]
		sumVolume += candles[i].Volume
		if i >= period {
			sumSigned -= signed[i-period]
			sumVolume -= candles[i-period].Volume
		}
		if i < period-1 || sumVolume <= 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sumSigned / sumVolume
	}
	return out
}
