package core

import "time"

// ExitReason identifies what closed (part of) a position
type ExitReason string

const (
	ExitTP1    ExitReason = "tp1"
	ExitTP2    ExitReason = "tp2"
	ExitStop   ExitReason = "stop"
	ExitSignal ExitReason = "signal"
	ExitEnd    ExitReason = "end"
)

// Position is the engine-managed state of an open trade. It is created on
// a confirmed entry fill, mutated only through ApplyExit, and discarded
// once RemainingQuantity reaches zero.
type Position struct {
	Side              Side
	Quantity          float64
	RemainingQuantity float64
	EntryPrice        float64
	StopPrice         float64
	TP1Price          float64
	TP2Price          float64
	TP1Done           bool
	TP2Done           bool
}

// ApplyExit reduces the remaining quantity by the exit quantity and
// reports whether the position is now fully closed. RemainingQuantity is
// clamped at zero so float residue cannot leave a phantom remainder.
func (p *Position) ApplyExit(quantity float64) bool {
	p.RemainingQuantity -= quantity
	if p.RemainingQuantity < 1e-12 {
		p.RemainingQuantity = 0
	}
	return p.RemainingQuantity == 0
}

// Exit records one partial or final close of a position
type Exit struct {
	Reason   ExitReason `json:"reason"`
	Time     time.Time  `json:"time"`
	Price    float64    `json:"price"`
	Quantity float64    `json:"quantity"`
	GrossPnL float64    `json:"grossPnl"`
	Fee      float64    `json:"fee"`
	NetPnL   float64    `json:"netPnl"`
}

// Trade is the immutable ledger record of a fully closed position
type Trade struct {
	ID               int        `json:"id"`
	Side             Side       `json:"side"`
	EntryTime        time.Time  `json:"entryTime"`
	EntryPrice       float64    `json:"entryPrice"`
	StopPriceAtEntry float64    `json:"stopPriceAtEntry"`
	Quantity         float64    `json:"quantity"`
	EntryFee         float64    `json:"entryFee"`
	Exits            []Exit     `json:"exits"`
	CloseTime        time.Time  `json:"closeTime"`
	ClosePrice       float64    `json:"closePrice"`
	GrossPnL         float64    `json:"grossPnl"`
	Fees             float64    `json:"fees"`
	NetPnL           float64    `json:"netPnl"`
}

// EquityPoint is one sample of the simulated equity curve
type EquityPoint struct {
	Time   time.Time `json:"time"`
	Equity float64   `json:"equity"`
}

// DirectionalPnL computes the gross profit of closing quantity contracts
// entered at entry and exited at exit for the given side.
func DirectionalPnL(side Side, entry, exit, quantity, contractMultiplier float64) float64 {
	if side == SideShort {
		return (entry - exit) * quantity * contractMultiplier
	}
	return (exit - entry) * quantity * contractMultiplier
}
