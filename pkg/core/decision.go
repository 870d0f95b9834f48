package core

import "time"

// Side identifies the direction of a signal or position
type Side string

const (
	SideNone  Side = "none"
	SideLong  Side = "long"
	SideShort Side = "short"
)

// Opposite returns the mirrored side. SideNone has no opposite.
func (s Side) Opposite() Side {
	switch s {
	case SideLong:
		return SideShort
	case SideShort:
		return SideLong
	}
	return SideNone
}

// Snapshot is the immutable per-bar feature vector the decision engine
// evaluates. It is created fresh for every evaluated bar and never mutated.
type Snapshot struct {
	Time  time.Time
	Price float64
	Low   float64
	High  float64

	Range RangeContext

	BullishDivergence bool
	BearishDivergence bool
	MoneyFlowSlope    float64
	BullishSFP        bool
	BearishSFP        bool

	RecentLowBrokeVAL  bool
	RecentHighBrokeVAH bool
}

// EntryDecision is the outcome of evaluating the long/short entry gates
// for one bar. Reasons is always non-empty: every failed gate when Signal
// is SideNone, or a single confirming code otherwise.
type EntryDecision struct {
	Signal  Side
	Reasons []Reason
}

// GateDiagnostics carries the per-side failure lists so callers can
// explain why a bar did or did not trade.
type GateDiagnostics struct {
	LongFailures  []Reason
	ShortFailures []Reason
}

// IntentKind distinguishes the actions a decision may request
type IntentKind string

const (
	IntentEnter IntentKind = "enter"
	IntentHold  IntentKind = "hold"
	IntentClose IntentKind = "close"
)

// Intent is a single requested action. Enter intents carry the full order
// plan (market price, stop, take-profit targets); close intents carry the
// price at which the open position should be flattened.
type Intent struct {
	Kind     IntentKind
	Side     Side
	Price    float64
	Stop     float64
	TP1Price float64
	TP2Price float64
	Reasons  []Reason
}

// StrategyDecision is the per-bar contract consumed by both the backtest
// simulator and a live execution layer.
type StrategyDecision struct {
	SnapshotTime time.Time
	Confidence   float64
	Reasons      []Reason
	Intents      []Intent
	Diagnostics  GateDiagnostics
}

// Enter returns the enter intent of the decision, if any
func (d StrategyDecision) Enter() (Intent, bool) {
	return d.find(IntentEnter)
}

// Close returns the close intent of the decision, if any
func (d StrategyDecision) Close() (Intent, bool) {
	return d.find(IntentClose)
}

func (d StrategyDecision) find(kind IntentKind) (Intent, bool) {
	for _, it := range d.Intents {
		if it.Kind == kind {
			return it, true
		}
	}
	return Intent{}, false
}
