// Package volprofile estimates a fair-value range for a candle window by
// binning traded volume by price. It produces the point of control and a
// value area, and merges two independently computed ranges into an
// effective range with an alignment flag.
package volprofile

import (
	"github.com/raykavin/rangerev/pkg/core"
)

// ComputeValueArea bins each candle's volume at its typical price across
// the window's price extent, then grows a contiguous bucket selection
// outward from the point of control until it covers valueAreaPct of the
// total volume.
//
// Degenerate windows have explicit fallbacks: an empty window yields zero
// levels, a single candle yields {low, high, close}, and a flat price
// range collapses to the last close.
func ComputeValueArea(candles []core.Candle, bins int, valueAreaPct float64) core.ValueAreaLevels {
	switch len(candles) {
	case 0:
		return core.ValueAreaLevels{}
	case 1:
		c := candles[0]
		return core.ValueAreaLevels{VAL: c.Low, VAH: c.High, POC: c.Close}
	}
	if bins < 1 {
		bins = 1
	}

	minPrice, maxPrice := candles[0].Low, candles[0].High
	for _, c := range candles[1:] {
		if c.Low < minPrice {
			minPrice = c.Low
		}
		if c.High > maxPrice {
			maxPrice = c.High
		}
	}
	if maxPrice <= minPrice {
		last := candles[len(candles)-1].Close
		return core.ValueAreaLevels{VAL: last, VAH: last, POC: last}
	}

	bucketWidth := (maxPrice - minPrice) / float64(bins)
	volumes := make([]float64, bins)
	var totalVolume float64
	for _, c := range candles {
		idx := int((c.TypicalPrice() - minPrice) / bucketWidth)
		if idx < 0 {
			idx = 0
		}
		if idx >= bins {
			idx = bins - 1
		}
		volumes[idx] += c.Volume
		totalVolume += c.Volume
	}

	// First bucket on ties, by ascending index
	pocIdx := 0
	for i, v := range volumes {
		if v > volumes[pocIdx] {
			pocIdx = i
		}
	}

	// Grow the selection outward from the POC bucket, always taking the
	// larger-volume unselected neighbor; ties prefer the higher-price side.
	lo, hi := pocIdx, pocIdx
	accumulated := volumes[pocIdx]
	target := totalVolume * valueAreaPct
	for accumulated < target && (lo > 0 || hi < bins-1) {
		leftVol, rightVol := -1.0, -1.0
		if lo > 0 {
			leftVol = volumes[lo-1]
		}
		if hi < bins-1 {
			rightVol = volumes[hi+1]
		}
		if rightVol >= leftVol {
			hi++
			accumulated += rightVol
		} else {
			lo--
			accumulated += leftVol
		}
	}

	return core.ValueAreaLevels{
		VAL: minPrice + float64(lo)*bucketWidth,
		VAH: minPrice + float64(hi+1)*bucketWidth,
		POC: minPrice + (float64(pocIdx)+0.5)*bucketWidth,
	}
}
