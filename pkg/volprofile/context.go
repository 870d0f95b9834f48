package volprofile

import (
	"github.com/raykavin/rangerev/pkg/core"
)

// OverlapRatio measures how much two value areas agree: the width of their
// intersection over the width of their union, clamped into [0, 1].
// A union of zero or negative width yields 0.
func OverlapRatio(a, b core.ValueAreaLevels) float64 {
	union := max(a.VAH, b.VAH) - min(a.VAL, b.VAL)
	if union <= 0 {
		return 0
	}
	overlap := min(a.VAH, b.VAH) - max(a.VAL, b.VAL)
	if overlap < 0 {
		overlap = 0
	}
	ratio := overlap / union
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

// BuildRangeContext independently computes value areas for the primary and
// secondary candle windows and merges them: the effective range is the
// elementwise average of the two, and the range is aligned when the
// overlap ratio reaches minOverlapPct.
func BuildRangeContext(primary, secondary []core.Candle, bins int, valueAreaPct, minOverlapPct float64) core.RangeContext {
	pa := ComputeValueArea(primary, bins, valueAreaPct)
	sa := ComputeValueArea(secondary, bins, valueAreaPct)

	overlap := OverlapRatio(pa, sa)
	return core.RangeContext{
		Primary:   pa,
		Secondary: sa,
		Effective: core.ValueAreaLevels{
			VAL: (pa.VAL + sa.VAL) / 2.0,
			VAH: (pa.VAH + sa.VAH) / 2.0,
			POC: (pa.POC + sa.POC) / 2.0,
		},
		OverlapRatio: overlap,
		IsAligned:    overlap >= minOverlapPct,
	}
}

// ForcedRangeContext builds a context from injected levels, replacing the
// primary, secondary and effective ranges uniformly. Used for test
// fixtures and externally validated range overrides.
func ForcedRangeContext(levels core.ValueAreaLevels, isAligned bool) core.RangeContext {
	overlap := 0.0
	if isAligned {
		overlap = 1.0
	}
	return core.RangeContext{
		Primary:      levels,
		Secondary:    levels,
		Effective:    levels,
		OverlapRatio: overlap,
		IsAligned:    isAligned,
	}
}
