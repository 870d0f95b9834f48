package strategy

import (
	"github.com/raykavin/rangerev/pkg/config"
	"github.com/raykavin/rangerev/pkg/core"
)

// Evaluate turns a snapshot plus the caller-supplied open-position state
// into a decision:
//   - a confirmed signal opposite an open position closes it (when the
//     configuration allows opposite-signal exits);
//   - an open position otherwise holds, carrying the gate reasons;
//   - a confirmed signal with no open position enters at the bar's close
//     with a buffered stop and two range-derived take-profit targets.
func (s *RangeReversal) Evaluate(snap core.Snapshot, position *core.Position) core.StrategyDecision {
	entry, diag := s.EvaluateEntry(snap)

	decision := core.StrategyDecision{
		SnapshotTime: snap.Time,
		Reasons:      entry.Reasons,
		Diagnostics:  diag,
	}

	if position != nil && entry.Signal != core.SideNone && entry.Signal == position.Side.Opposite() &&
		s.cfg.Exits.RunnerExitOnOppositeSignal {
		decision.Confidence = 1
		decision.Intents = []core.Intent{{
			Kind:    core.IntentClose,
			Side:    position.Side,
			Price:   snap.Price,
			Reasons: entry.Reasons,
		}}
		return decision
	}

	if position != nil {
		decision.Intents = []core.Intent{{
			Kind:    core.IntentHold,
			Side:    position.Side,
			Reasons: entry.Reasons,
		}}
		return decision
	}

	if entry.Signal == core.SideNone {
		reasons := entry.Reasons
		if len(reasons) == 0 {
			reasons = []core.Reason{core.ReasonNoConfluence}
		}
		decision.Reasons = reasons
		decision.Intents = []core.Intent{{
			Kind:    core.IntentHold,
			Reasons: reasons,
		}}
		return decision
	}

	stop := entryStop(entry.Signal, snap, s.cfg.Risk.SlBufferPct)
	tp1, tp2 := ResolveTakeProfitLevels(entry.Signal, snap.Range.Effective, s.cfg.Exits)

	decision.Confidence = 1
	decision.Intents = []core.Intent{{
		Kind:     core.IntentEnter,
		Side:     entry.Signal,
		Price:    snap.Price,
		Stop:     stop,
		TP1Price: tp1,
		TP2Price: tp2,
		Reasons:  entry.Reasons,
	}}
	return decision
}

// entryStop derives the protective stop from the confirming bar's extreme,
// buffered by slBufferPct
func entryStop(side core.Side, snap core.Snapshot, slBufferPct float64) float64 {
	if side == core.SideShort {
		return snap.High * (1 + slBufferPct)
	}
	return snap.Low * (1 - slBufferPct)
}

// ResolveTakeProfitLevels maps the configured range levels to target
// prices for the given side and orders them so the first return value is
// always the nearer target to entry, regardless of which level each
// target is configured to use. Level names are mirrored for shorts so the
// default (mid, vah) ladder becomes (mid, val).
func ResolveTakeProfitLevels(side core.Side, effective core.ValueAreaLevels, exits config.Exits) (tp1, tp2 float64) {
	tp1 = levelPrice(side, effective, exits.TP1RangeLevel)
	tp2 = levelPrice(side, effective, exits.TP2RangeLevel)

	// Nearer target first: ascending for longs, descending for shorts
	if side == core.SideLong && tp2 < tp1 {
		tp1, tp2 = tp2, tp1
	}
	if side == core.SideShort && tp2 > tp1 {
		tp1, tp2 = tp2, tp1
	}
	return tp1, tp2
}

func levelPrice(side core.Side, effective core.ValueAreaLevels, level config.RangeLevel) float64 {
	if side == core.SideShort {
		switch level {
		case config.LevelVAL:
			level = config.LevelVAH
		case config.LevelVAH:
			level = config.LevelVAL
		}
	}
	switch level {
	case config.LevelPOC:
		return effective.POC
	case config.LevelVAL:
		return effective.VAL
	case config.LevelVAH:
		return effective.VAH
	default:
		return effective.Midpoint()
	}
}
