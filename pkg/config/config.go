// Package config defines the strategy configuration: five validated
// parameter groups resolved by deep-merging caller overrides onto
// documented defaults. A resolved Config is immutable; producing a
// different configuration means resolving a new value.
package config

// Config is the resolved, immutable strategy configuration
type Config struct {
	Range     Range     `mapstructure:"range" json:"range"`
	Signal    Signal    `mapstructure:"signal" json:"signal"`
	Risk      Risk      `mapstructure:"risk" json:"risk"`
	Exits     Exits     `mapstructure:"exits" json:"exits"`
	FillModel FillModel `mapstructure:"fillModel" json:"fillModel"`
}

// Range controls the volume-profile value-area computation and the
// primary/secondary range merge
type Range struct {
	PrimaryLookbackBars   int     `mapstructure:"primaryLookbackBars" json:"primaryLookbackBars"`
	SecondaryLookbackBars int     `mapstructure:"secondaryLookbackBars" json:"secondaryLookbackBars"`
	Bins                  int     `mapstructure:"bins" json:"bins"`
	ValueAreaPct          float64 `mapstructure:"valueAreaPct" json:"valueAreaPct"`
	MinOverlapPct         float64 `mapstructure:"minOverlapPct" json:"minOverlapPct"`
}

// Signal controls indicator lengths and the entry gating toggles
type Signal struct {
	ChannelLength              int     `mapstructure:"channelLength" json:"channelLength"`
	AverageLength              int     `mapstructure:"averageLength" json:"averageLength"`
	SignalLength               int     `mapstructure:"signalLength" json:"signalLength"`
	MoneyFlowPeriod            int     `mapstructure:"moneyFlowPeriod" json:"moneyFlowPeriod"`
	MoneyFlowSlopeLookback     int     `mapstructure:"moneyFlowSlopeLookback" json:"moneyFlowSlopeLookback"`
	SwingLookback              int     `mapstructure:"swingLookback" json:"swingLookback"`
	MaxBarsAfterDivergence     int     `mapstructure:"maxBarsAfterDivergence" json:"maxBarsAfterDivergence"`
	SfpLookbackBars            int     `mapstructure:"sfpLookbackBars" json:"sfpLookbackBars"`
	RequireDivergence          bool    `mapstructure:"requireDivergence" json:"requireDivergence"`
	RequireSfp                 bool    `mapstructure:"requireSfp" json:"requireSfp"`
	AllowArmedReentry          bool    `mapstructure:"allowArmedReentry" json:"allowArmedReentry"`
	ArmedReentryMaxDistancePct float64 `mapstructure:"armedReentryMaxDistancePct" json:"armedReentryMaxDistancePct"`
	PriceExcursionLookbackBars int     `mapstructure:"priceExcursionLookbackBars" json:"priceExcursionLookbackBars"`
}

// Risk controls position sizing, fees and the protective stop buffer
type Risk struct {
	RiskPctPerTrade      float64 `mapstructure:"riskPctPerTrade" json:"riskPctPerTrade"`
	Leverage             float64 `mapstructure:"leverage" json:"leverage"`
	MaxNotionalPctEquity float64 `mapstructure:"maxNotionalPctEquity" json:"maxNotionalPctEquity"`
	ContractMultiplier   float64 `mapstructure:"contractMultiplier" json:"contractMultiplier"`
	LotStep              float64 `mapstructure:"lotStep" json:"lotStep"`
	FeeRate              float64 `mapstructure:"feeRate" json:"feeRate"`
	SlBufferPct          float64 `mapstructure:"slBufferPct" json:"slBufferPct"`
}

// RangeLevel names a price level of the effective range usable as a
// take-profit target
type RangeLevel string

const (
	LevelMid RangeLevel = "mid"
	LevelPOC RangeLevel = "poc"
	LevelVAL RangeLevel = "val"
	LevelVAH RangeLevel = "vah"
)

// Exits controls the partial take-profit ladder and exit policies.
// TP1SizePct and TP2SizePct may deliberately sum below 1: the remainder is
// a runner that exits only via stop, opposite signal, or end of data.
type Exits struct {
	TP1RangeLevel              RangeLevel `mapstructure:"tp1RangeLevel" json:"tp1RangeLevel"`
	TP2RangeLevel              RangeLevel `mapstructure:"tp2RangeLevel" json:"tp2RangeLevel"`
	TP1SizePct                 float64    `mapstructure:"tp1SizePct" json:"tp1SizePct"`
	TP2SizePct                 float64    `mapstructure:"tp2SizePct" json:"tp2SizePct"`
	BreakevenAfterTP1          bool       `mapstructure:"breakevenAfterTp1" json:"breakevenAfterTp1"`
	RunnerExitOnOppositeSignal bool       `mapstructure:"runnerExitOnOppositeSignal" json:"runnerExitOnOppositeSignal"`
	CooldownBars               int        `mapstructure:"cooldownBars" json:"cooldownBars"`
}

// IntrabarPriority resolves the same-bar stop-versus-target ambiguity
type IntrabarPriority string

const (
	StopFirst   IntrabarPriority = "stop-first"
	TargetFirst IntrabarPriority = "target-first"
)

// FillModel controls how simulated fills are ordered within a bar
type FillModel struct {
	IntrabarPriority IntrabarPriority `mapstructure:"intrabarPriority" json:"intrabarPriority"`
}
