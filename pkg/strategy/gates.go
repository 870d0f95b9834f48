package strategy

import (
	"github.com/StudioSol/set"

	"github.com/raykavin/rangerev/pkg/core"
)

// EvaluateEntry runs the long and short entry gates independently against
// the snapshot and resolves them into a single EntryDecision:
//   - both sides passing is ambiguous and never trades;
//   - exactly one side passing confirms that side with a single reason;
//   - neither passing yields the de-duplicated union of both failure lists.
func (s *RangeReversal) EvaluateEntry(snap core.Snapshot) (core.EntryDecision, core.GateDiagnostics) {
	diag := core.GateDiagnostics{
		LongFailures:  s.longGateFailures(snap),
		ShortFailures: s.shortGateFailures(snap),
	}

	longOK := len(diag.LongFailures) == 0
	shortOK := len(diag.ShortFailures) == 0

	switch {
	case longOK && shortOK:
		return core.EntryDecision{
			Signal:  core.SideNone,
			Reasons: []core.Reason{core.ReasonConflictingSignals},
		}, diag
	case longOK:
		return core.EntryDecision{
			Signal:  core.SideLong,
			Reasons: []core.Reason{core.ReasonLongConfluence},
		}, diag
	case shortOK:
		return core.EntryDecision{
			Signal:  core.SideShort,
			Reasons: []core.Reason{core.ReasonShortConfluence},
		}, diag
	}

	return core.EntryDecision{
		Signal:  core.SideNone,
		Reasons: mergeFailures(diag.LongFailures, diag.ShortFailures),
	}, diag
}

func (s *RangeReversal) longGateFailures(snap core.Snapshot) []core.Reason {
	var failures []core.Reason
	sig := s.cfg.Signal
	rng := snap.Range

	if !rng.IsAligned {
		failures = append(failures, core.ReasonRangeNotAligned)
	}

	if snap.Price >= rng.Effective.VAL {
		switch {
		case !sig.AllowArmedReentry || !snap.RecentLowBrokeVAL:
			failures = append(failures, core.ReasonLongPriceNotBelowVAL)
		case snap.Price-rng.Effective.VAL > sig.ArmedReentryMaxDistancePct*rng.Effective.Width():
			failures = append(failures, core.ReasonLongReentryTooFar)
		}
	}

	if sig.RequireDivergence && !snap.BullishDivergence {
		failures = append(failures, core.ReasonLongMissingDivergence)
	}
	if !(snap.MoneyFlowSlope > 0) {
		failures = append(failures, core.ReasonLongMoneyFlowNotPositive)
	}
	if sig.RequireSfp && !snap.BullishSFP {
		failures = append(failures, core.ReasonLongMissingSFP)
	}
	return failures
}

func (s *RangeReversal) shortGateFailures(snap core.Snapshot) []core.Reason {
	var failures []core.Reason
	sig := s.cfg.Signal
	rng := snap.Range

	if !rng.IsAligned {
		failures = append(failures, core.ReasonRangeNotAligned)
	}

	if snap.Price <= rng.Effective.VAH {
		switch {
		case !sig.AllowArmedReentry || !snap.RecentHighBrokeVAH:
			failures = append(failures, core.ReasonShortPriceNotAboveVAH)
		case rng.Effective.VAH-snap.Price > sig.ArmedReentryMaxDistancePct*rng.Effective.Width():
			failures = append(failures, core.ReasonShortReentryTooFar)
		}
	}

	if sig.RequireDivergence && !snap.BearishDivergence {
		failures = append(failures, core.ReasonShortMissingDivergence)
	}
	if !(snap.MoneyFlowSlope < 0) {
		failures = append(failures, core.ReasonShortMoneyFlowNotNegative)
	}
	if sig.RequireSfp && !snap.BearishSFP {
		failures = append(failures, core.ReasonShortMissingSFP)
	}
	return failures
}

// mergeFailures joins both failure lists preserving first-seen order and
// dropping duplicates (shared gates like alignment fail on both sides).
func mergeFailures(long, short []core.Reason) []core.Reason {
	ordered := set.NewLinkedHashSetString()
	for _, r := range long {
		ordered.Add(r.String())
	}
	for _, r := range short {
		ordered.Add(r.String())
	}

	merged := make([]core.Reason, 0, len(long)+len(short))
	for code := range ordered.Iter() {
		merged = append(merged, core.ParseReason(code))
	}
	return merged
}
