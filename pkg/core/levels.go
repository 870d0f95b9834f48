package core

// ValueAreaLevels holds the volume-profile levels of a candle window:
// the value-area low/high bounds and the point of control.
// Invariant: VAL <= POC <= VAH.
type ValueAreaLevels struct {
	VAL float64 `json:"val"`
	VAH float64 `json:"vah"`
	POC float64 `json:"poc"`
}

// Width returns the distance between the value-area bounds
func (l ValueAreaLevels) Width() float64 {
	return l.VAH - l.VAL
}

// Midpoint returns the center of the value area
func (l ValueAreaLevels) Midpoint() float64 {
	return (l.VAL + l.VAH) / 2.0
}

// IsZero reports whether no levels have been computed
func (l ValueAreaLevels) IsZero() bool {
	return l.VAL == 0 && l.VAH == 0 && l.POC == 0
}

// RangeContext combines the primary and secondary timeframe value areas
// into an effective trading range with an alignment flag.
type RangeContext struct {
	Primary      ValueAreaLevels `json:"primary"`
	Secondary    ValueAreaLevels `json:"secondary"`
	Effective    ValueAreaLevels `json:"effective"`
	OverlapRatio float64         `json:"overlapRatio"`
	IsAligned    bool            `json:"isAligned"`
}
