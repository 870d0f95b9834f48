package config

// FieldType defines the data type of a schema field
type FieldType string

const (
	TypeInt   FieldType = "int"
	TypeFloat FieldType = "float"
	TypeBool  FieldType = "bool"
	TypeEnum  FieldType = "enum"
)

// Field describes one configurable parameter for presentation layers:
// section grouping, label, type and numeric constraints. The metadata is
// descriptive only and never affects resolution.
type Field struct {
	Section     string    `json:"section"`
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Description string    `json:"description,omitempty"`
	Type        FieldType `json:"type"`
	Min         float64   `json:"min,omitempty"`
	Max         float64   `json:"max,omitempty"`
	Step        float64   `json:"step,omitempty"`
	Options     []string  `json:"options,omitempty"`
}

// Schema returns the machine-readable field metadata for every
// configurable parameter, ordered by section.
func Schema() []Field {
	return []Field{
		{Section: "range", Name: "primaryLookbackBars", Label: "Primary lookback bars", Type: TypeInt, Min: 2, Max: 5000, Step: 1},
		{Section: "range", Name: "secondaryLookbackBars", Label: "Secondary lookback bars", Type: TypeInt, Min: 2, Max: 5000, Step: 1},
		{Section: "range", Name: "bins", Label: "Volume profile bins", Type: TypeInt, Min: 1, Max: 500, Step: 1},
		{Section: "range", Name: "valueAreaPct", Label: "Value area %", Type: TypeFloat, Min: 0.01, Max: 1, Step: 0.01},
		{Section: "range", Name: "minOverlapPct", Label: "Minimum overlap %", Description: "Overlap ratio required for the primary and secondary ranges to be considered aligned", Type: TypeFloat, Min: 0, Max: 1, Step: 0.01},

		{Section: "signal", Name: "channelLength", Label: "WaveTrend channel length", Type: TypeInt, Min: 1, Max: 200, Step: 1},
		{Section: "signal", Name: "averageLength", Label: "WaveTrend average length", Type: TypeInt, Min: 1, Max: 200, Step: 1},
		{Section: "signal", Name: "signalLength", Label: "WaveTrend signal length", Type: TypeInt, Min: 1, Max: 200, Step: 1},
		{Section: "signal", Name: "moneyFlowPeriod", Label: "Money flow period", Type: TypeInt, Min: 1, Max: 200, Step: 1},
		{Section: "signal", Name: "moneyFlowSlopeLookback", Label: "Money flow slope lookback", Type: TypeInt, Min: 1, Max: 50, Step: 1},
		{Section: "signal", Name: "swingLookback", Label: "Pivot swing lookback", Type: TypeInt, Min: 1, Max: 50, Step: 1},
		{Section: "signal", Name: "maxBarsAfterDivergence", Label: "Max bars after divergence", Type: TypeInt, Min: 0, Max: 100, Step: 1},
		{Section: "signal", Name: "sfpLookbackBars", Label: "SFP lookback bars", Type: TypeInt, Min: 1, Max: 200, Step: 1},
		{Section: "signal", Name: "requireDivergence", Label: "Require divergence", Type: TypeBool},
		{Section: "signal", Name: "requireSfp", Label: "Require SFP", Type: TypeBool},
		{Section: "signal", Name: "allowArmedReentry", Label: "Allow armed re-entry", Type: TypeBool},
		{Section: "signal", Name: "armedReentryMaxDistancePct", Label: "Armed re-entry max distance %", Description: "Maximum distance from the swept range boundary, as a fraction of range width", Type: TypeFloat, Min: 0, Max: 1, Step: 0.01},
		{Section: "signal", Name: "priceExcursionLookbackBars", Label: "Price excursion lookback bars", Type: TypeInt, Min: 1, Max: 200, Step: 1},

		{Section: "risk", Name: "riskPctPerTrade", Label: "Risk % per trade", Type: TypeFloat, Min: 0.0001, Max: 1, Step: 0.001},
		{Section: "risk", Name: "leverage", Label: "Leverage", Type: TypeFloat, Min: 1, Max: 125, Step: 1},
		{Section: "risk", Name: "maxNotionalPctEquity", Label: "Max notional % of equity", Type: TypeFloat, Min: 0.01, Max: 10, Step: 0.01},
		{Section: "risk", Name: "contractMultiplier", Label: "Contract multiplier", Type: TypeFloat, Min: 0.0001, Max: 10000, Step: 0.0001},
		{Section: "risk", Name: "lotStep", Label: "Lot step", Type: TypeFloat, Min: 0, Max: 1000, Step: 0.0001},
		{Section: "risk", Name: "feeRate", Label: "Fee rate", Type: TypeFloat, Min: 0, Max: 0.1, Step: 0.0001},
		{Section: "risk", Name: "slBufferPct", Label: "Stop buffer %", Type: TypeFloat, Min: 0, Max: 0.2, Step: 0.0001},

		{Section: "exits", Name: "tp1RangeLevel", Label: "TP1 range level", Type: TypeEnum, Options: []string{"mid", "poc", "val", "vah"}},
		{Section: "exits", Name: "tp2RangeLevel", Label: "TP2 range level", Type: TypeEnum, Options: []string{"mid", "poc", "val", "vah"}},
		{Section: "exits", Name: "tp1SizePct", Label: "TP1 size %", Type: TypeFloat, Min: 0.01, Max: 1, Step: 0.01},
		{Section: "exits", Name: "tp2SizePct", Label: "TP2 size %", Description: "A tp1+tp2 sum below 1 leaves a runner closed only by stop, opposite signal or end of data", Type: TypeFloat, Min: 0.01, Max: 1, Step: 0.01},
		{Section: "exits", Name: "breakevenAfterTp1", Label: "Breakeven after TP1", Type: TypeBool},
		{Section: "exits", Name: "runnerExitOnOppositeSignal", Label: "Runner exit on opposite signal", Type: TypeBool},
		{Section: "exits", Name: "cooldownBars", Label: "Cooldown bars", Type: TypeInt, Min: 0, Max: 500, Step: 1},

		{Section: "fillModel", Name: "intrabarPriority", Label: "Intrabar fill priority", Description: "Tie-break when both stop and a target would fill within the same bar", Type: TypeEnum, Options: []string{"stop-first", "target-first"}},
	}
}
