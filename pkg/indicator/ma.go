// Package indicator provides the stateless array transforms used by the
// range-reversal strategy: moving averages, a WaveTrend-style oscillator,
// a money-flow oscillator and slope extraction.
package indicator

import (
	"math"

	"github.com/markcheno/go-talib"

	"github.com/raykavin/rangerev/pkg/core"
)

// MovingAverage computes a simple moving average over the values.
// Positions before period-1 samples are NaN, never zero.
func MovingAverage(values []float64, period int) core.Series[float64] {
	if len(values) == 0 {
		return core.Series[float64]{}
	}
	if period <= 0 || len(values) < period {
		return undefinedSeries(len(values))
	}
	out := talib.Sma(values, period)
	markWarmup(out, period-1)
	return out
}

// ExponentialAverage computes an exponential moving average over the
// values. Positions before period-1 samples are NaN, never zero.
func ExponentialAverage(values []float64, period int) core.Series[float64] {
	if len(values) == 0 {
		return core.Series[float64]{}
	}
	if period <= 0 || len(values) < period {
		return undefinedSeries(len(values))
	}
	out := talib.Ema(values, period)
	markWarmup(out, period-1)
	return out
}

// SlopeAt returns values[index] - values[index-lookbackBars].
// Out-of-range or non-finite endpoints yield 0 so slope absence never
// propagates as NaN into gating logic.
func SlopeAt(values []float64, index, lookbackBars int) float64 {
	if index < 0 || index >= len(values) {
		return 0
	}
	prev := index - lookbackBars
	if prev < 0 || prev >= len(values) {
		return 0
	}
	if !core.IsFinite(values[index]) || !core.IsFinite(values[prev]) {
		return 0
	}
	return values[index] - values[prev]
}

// markWarmup overwrites the unformed head of a talib output with NaN.
// Values there are seeded zeros, not real averages.
func markWarmup(values []float64, n int) {
	if n > len(values) {
		n = len(values)
	}
	for i := 0; i < n; i++ {
		values[i] = math.NaN()
	}
}

func undefinedSeries(n int) core.Series[float64] {
	out := make(core.Series[float64], n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
