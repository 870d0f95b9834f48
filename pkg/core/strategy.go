package core

// Strategy is the contract shared by pluggable trading strategies.
// BuildSnapshot derives the per-bar feature vector; Evaluate turns a
// snapshot plus the caller-supplied open-position state into a decision.
// Implementations must be pure: no I/O, no state retained between calls.
type Strategy interface {
	// Name identifies the strategy
	Name() string

	// WarmupPeriod is the number of execution bars needed before the
	// strategy's indicators are fully formed
	WarmupPeriod() int

	// BuildSnapshot derives the feature vector for exec[index], using the
	// primary and secondary higher-timeframe windows for range context.
	// Indexing out of range is a programmer error and panics.
	BuildSnapshot(exec, primary, secondary []Candle, index int) Snapshot

	// Evaluate produces the decision for a snapshot given the current
	// open position, or nil when flat
	Evaluate(snapshot Snapshot, position *Position) StrategyDecision
}
