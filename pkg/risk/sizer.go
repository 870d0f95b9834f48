// Package risk converts an equity figure and an entry/stop pair into a
// contract quantity under a risk-percentage budget and a notional cap.
package risk

import (
	"math"

	"github.com/raykavin/rangerev/pkg/config"
	"github.com/raykavin/rangerev/pkg/core"
)

// Sizing reports the computed quantity and which constraint bound it
type Sizing struct {
	Quantity           float64
	RiskAmount         float64
	StopDistance       float64
	QtyFromRisk        float64
	QtyFromNotionalCap float64
	UsedNotionalCap    bool
}

// SizePosition sizes a trade so that being stopped out loses at most
// RiskPctPerTrade of equity, capped by the leverage-adjusted notional
// limit, and floored to the lot step. Degenerate inputs (non-positive
// equity, zero or non-finite stop distance) yield a zero quantity rather
// than an error.
func SizePosition(equity, entryPrice, stopPrice float64, cfg config.Risk) Sizing {
	stopDistance := math.Abs(entryPrice - stopPrice)
	if equity <= 0 || stopDistance <= 0 ||
		!core.IsFinite(equity) || !core.IsFinite(entryPrice) || !core.IsFinite(stopPrice) {
		return Sizing{}
	}

	riskAmount := equity * cfg.RiskPctPerTrade
	qtyFromRisk := riskAmount / (stopDistance * cfg.ContractMultiplier)

	maxNotional := equity * cfg.Leverage * cfg.MaxNotionalPctEquity
	qtyFromCap := maxNotional / (entryPrice * cfg.ContractMultiplier)

	quantity := qtyFromRisk
	usedCap := false
	if qtyFromCap < quantity {
		quantity = qtyFromCap
		usedCap = true
	}
	quantity = floorToStep(quantity, cfg.LotStep)

	return Sizing{
		Quantity:           quantity,
		RiskAmount:         riskAmount,
		StopDistance:       stopDistance,
		QtyFromRisk:        qtyFromRisk,
		QtyFromNotionalCap: qtyFromCap,
		UsedNotionalCap:    usedCap,
	}
}

// floorToStep truncates quantity toward zero to a multiple of step.
// A zero step applies no rounding. The epsilon guards against float
// residue pushing an exact multiple below its own step boundary.
func floorToStep(quantity, step float64) float64 {
	if step <= 0 {
		return quantity
	}
	return math.Floor(quantity/step+1e-9) * step
}
