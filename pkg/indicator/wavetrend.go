package indicator

import (
	"github.com/markcheno/go-talib"

	"github.com/raykavin/rangerev/pkg/core"
)

// WaveTrend computes the WaveTrend oscillator over the candles:
// typical price, exponentially smoothed, normalized by the exponentially
// smoothed mean absolute deviation, smoothed again into wt1, with wt2 as
// the moving-average signal line of wt1.
// A zero deviation yields a channel index of 0, not an error.
func WaveTrend(candles []core.Candle, channelLength, averageLength, signalLength int) (wt1, wt2 core.Series[float64]) {
	n := len(candles)
	if n == 0 {
		return core.Series[float64]{}, core.Series[float64]{}
	}
	// talib smoothers need at least one full period of samples
	if channelLength < 1 || averageLength < 1 || signalLength < 1 ||
		n < channelLength || n < averageLength || n < signalLength {
		return undefinedSeries(n), undefinedSeries(n)
	}

	tp := make([]float64, n)
	for i, c := range candles {
		tp[i] = c.TypicalPrice()
	}

	esa := talib.Ema(tp, channelLength)

	dev := make([]float64, n)
	for i := range dev {
		d := tp[i] - esa[i]
		if d < 0 {
			d = -d
		}
		dev[i] = d
	}
	de := talib.Ema(dev, channelLength)

	ci := make([]float64, n)
	for i := range ci {
		if de[i] == 0 {
			ci[i] = 0
			continue
		}
		ci[i] = (tp[i] - esa[i]) / (0.015 * de[i])
	}

	wt1 = talib.Ema(ci, averageLength)
	wt2 = talib.Sma(wt1, signalLength)
	return wt1, wt2
}
