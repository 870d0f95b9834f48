package signal

import (
	"github.com/raykavin/rangerev/pkg/core"
)

// BullishSFP reports a bullish swing-failure pattern at index: the bar's
// low sweeps below the minimum low of the prior lookbackBars bars but the
// close reclaims back above that level.
func BullishSFP(candles []core.Candle, index, lookbackBars int) bool {
	if index < 1 || index >= len(candles) || lookbackBars < 1 {
		return false
	}
	start := index - lookbackBars
	if start < 0 {
		start = 0
	}
	swept := candles[start].Low
	for _, c := range candles[start:index] {
		if c.Low < swept {
			swept = c.Low
		}
	}
	bar := candles[index]
	return bar.Low < swept && bar.Close > swept
}

// BearishSFP is the mirror of BullishSFP on prior highs: a sweep above the
// prior maximum high with a close back below it.
func BearishSFP(candles []core.Candle, index, lookbackBars int) bool {
	if index < 1 || index >= len(candles) || lookbackBars < 1 {
		return false
	}
	start := index - lookbackBars
	if start < 0 {
		start = 0
	}
	swept := candles[start].High
	for _, c := range candles[start:index] {
		if c.High > swept {
			swept = c.High
		}
	}
	bar := candles[index]
	return bar.High > swept && bar.Close < swept
}
