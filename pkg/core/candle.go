package core

import (
	"fmt"
	"strconv"
	"time"
)

// Candle represents a single OHLCV bar of market data
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64

	// Overrides pins derived features for this bar, replacing the computed
	// values during snapshot construction. Nil for normal candles.
	Overrides *FeatureOverrides
}

// FeatureOverrides allows callers to force per-bar feature values, either
// for deterministic test fixtures or for externally validated range levels.
// Only non-nil fields take effect.
type FeatureOverrides struct {
	Levels            *ValueAreaLevels
	IsAligned         *bool
	BullishDivergence *bool
	BearishDivergence *bool
	BullishSFP        *bool
	BearishSFP        *bool
	MoneyFlowSlope    *float64
}

// TypicalPrice returns the (high+low+close)/3 price of the candle
func (c Candle) TypicalPrice() float64 {
	return (c.High + c.Low + c.Close) / 3.0
}

// IsEmpty checks if the candle contains no significant data
func (c Candle) IsEmpty() bool {
	return c.Open == 0 && c.Close == 0 && c.Volume == 0
}

// ToSlice converts a candle to a string slice for serialization
// with the specified decimal precision
func (c Candle) ToSlice(precision int) []string {
	return []string{
		fmt.Sprintf("%d", c.Time.Unix()),
		strconv.FormatFloat(c.Open, 'f', precision, 64),
		strconv.FormatFloat(c.Close, 'f', precision, 64),
		strconv.FormatFloat(c.Low, 'f', precision, 64),
		strconv.FormatFloat(c.High, 'f', precision, 64),
		strconv.FormatFloat(c.Volume, 'f', precision, 64),
	}
}
