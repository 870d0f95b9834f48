// Package backtest deterministically replays the range-reversal strategy
// against a historical candle series, simulating fills with an explicit
// intrabar ordering and fee model, and accumulating a trade ledger,
// equity curve and performance metrics.
package backtest

import (
	"time"

	"github.com/raykavin/rangerev/pkg/config"
	"github.com/raykavin/rangerev/pkg/core"
	"github.com/raykavin/rangerev/pkg/risk"
	"github.com/raykavin/rangerev/pkg/strategy"
)

// Result is the complete outcome of one backtest run
type Result struct {
	Config      config.Config      `json:"config"`
	Trades      []core.Trade       `json:"trades"`
	EquityCurve []core.EquityPoint `json:"equityCurve"`
	Metrics     Metrics            `json:"metrics"`
}

// Run replays the execution-candle series left to right, one decision per
// bar, and returns the resulting ledger, equity curve and metrics.
// Identical inputs produce identical results on every invocation; no
// state survives the call, so concurrent runs over the same data are safe.
//
// A series that never fires a signal is a valid zero-activity result, not
// an error.
func Run(cfg config.Config, exec, primary, secondary []core.Candle, initialEquity float64) Result {
	sim := &simulator{
		cfg:    cfg,
		strat:  strategy.NewRangeReversal(cfg),
		equity: initialEquity,
	}

	for i := range exec {
		sim.step(exec, primary, secondary, i)
	}

	// Never leave a dangling position in the ledger
	if sim.position != nil {
		last := exec[len(exec)-1]
		sim.closeRemaining(len(exec)-1, last.Time, last.Close, core.ExitEnd)
		sim.equityCurve[len(sim.equityCurve)-1].Equity = sim.equity
	}

	return Result{
		Config:      cfg,
		Trades:      sim.trades,
		EquityCurve: sim.equityCurve,
		Metrics:     ComputeMetrics(sim.trades, sim.equityCurve, initialEquity),
	}
}

type simulator struct {
	cfg   config.Config
	strat *strategy.RangeReversal

	equity      float64
	position    *core.Position
	openTrade   *core.Trade
	trades      []core.Trade
	equityCurve []core.EquityPoint

	cooldownUntil int
	nextTradeID   int
}

func (s *simulator) step(exec, primary, secondary []core.Candle, i int) {
	bar := exec[i]
	snap := s.strat.BuildSnapshot(exec, primary, secondary, i)
	decision := s.strat.Evaluate(snap, s.position)

	if s.position != nil {
		s.processIntrabar(i, bar)
	}

	// Opposite-signal runner exit at the bar's close
	if s.position != nil {
		if closeIntent, ok := decision.Close(); ok {
			s.closeRemaining(i, bar.Time, closeIntent.Price, core.ExitSignal)
		}
	}

	if s.position == nil && i >= s.cooldownUntil {
		if enter, ok := decision.Enter(); ok {
			s.open(bar, enter)
		}
	}

	s.equityCurve = append(s.equityCurve, core.EquityPoint{Time: bar.Time, Equity: s.equity})
}

// processIntrabar resolves stop and take-profit touches within the bar's
// high/low range in the configured priority order.
func (s *simulator) processIntrabar(i int, bar core.Candle) {
	if s.cfg.FillModel.IntrabarPriority == config.StopFirst {
		if s.stopTouched(bar) {
			s.closeRemaining(i, bar.Time, s.position.StopPrice, core.ExitStop)
			return
		}
		s.fillTargets(i, bar)
		return
	}

	// target-first: honor targets, then test the (possibly promoted) stop
	s.fillTargets(i, bar)
	if s.position != nil && s.stopTouched(bar) {
		s.closeRemaining(i, bar.Time, s.position.StopPrice, core.ExitStop)
	}
}

// fillTargets fills the still-pending take-profit targets nearest to entry
// first. TP1 is the nearer target by construction of the entry intent.
func (s *simulator) fillTargets(i int, bar core.Candle) {
	pos := s.position
	if !pos.TP1Done && s.targetTouched(bar, pos.TP1Price) {
		pos.TP1Done = true
		quantity := minFloat(pos.Quantity*s.cfg.Exits.TP1SizePct, pos.RemainingQuantity)
		s.closePartial(i, bar.Time, pos.TP1Price, quantity, core.ExitTP1)
		if s.position != nil && s.cfg.Exits.BreakevenAfterTP1 {
			s.position.StopPrice = s.position.EntryPrice
		}
	}
	if s.position != nil && !s.position.TP2Done && s.targetTouched(bar, s.position.TP2Price) {
		s.position.TP2Done = true
		quantity := minFloat(s.position.Quantity*s.cfg.Exits.TP2SizePct, s.position.RemainingQuantity)
		s.closePartial(i, bar.Time, s.position.TP2Price, quantity, core.ExitTP2)
	}
}

func (s *simulator) stopTouched(bar core.Candle) bool {
	if s.position.Side == core.SideShort {
		return bar.High >= s.position.StopPrice
	}
	return bar.Low <= s.position.StopPrice
}

func (s *simulator) targetTouched(bar core.Candle, target float64) bool {
	if s.position.Side == core.SideShort {
		return bar.Low <= target
	}
	return bar.High >= target
}

// open sizes and opens a new position from an enter intent, charging the
// entry fee against equity and starting its trade record.
func (s *simulator) open(bar core.Candle, enter core.Intent) {
	sizing := risk.SizePosition(s.equity, enter.Price, enter.Stop, s.cfg.Risk)
	if sizing.Quantity <= 0 {
		return
	}

	entryFee := notional(enter.Price, sizing.Quantity, s.cfg.Risk.ContractMultiplier) * s.cfg.Risk.FeeRate
	s.equity -= entryFee
	s.nextTradeID++

	s.position = &core.Position{
		Side:              enter.Side,
		Quantity:          sizing.Quantity,
		RemainingQuantity: sizing.Quantity,
		EntryPrice:        enter.Price,
		StopPrice:         enter.Stop,
		TP1Price:          enter.TP1Price,
		TP2Price:          enter.TP2Price,
	}
	s.openTrade = &core.Trade{
		ID:               s.nextTradeID,
		Side:             enter.Side,
		EntryTime:        bar.Time,
		EntryPrice:       enter.Price,
		StopPriceAtEntry: enter.Stop,
		Quantity:         sizing.Quantity,
		EntryFee:         entryFee,
	}
}

// closePartial books one partial or final exit of the open position
func (s *simulator) closePartial(i int, at time.Time, price, quantity float64, reason core.ExitReason) {
	pos := s.position
	gross := core.DirectionalPnL(pos.Side, pos.EntryPrice, price, quantity, s.cfg.Risk.ContractMultiplier)
	fee := notional(price, quantity, s.cfg.Risk.ContractMultiplier) * s.cfg.Risk.FeeRate
	net := gross - fee
	s.equity += net

	s.openTrade.Exits = append(s.openTrade.Exits, core.Exit{
		Reason:   reason,
		Time:     at,
		Price:    price,
		Quantity: quantity,
		GrossPnL: gross,
		Fee:      fee,
		NetPnL:   net,
	})

	if pos.ApplyExit(quantity) {
		s.finalize(i, at, price)
	}
}

// closeRemaining flattens whatever is left of the open position
func (s *simulator) closeRemaining(i int, at time.Time, price float64, reason core.ExitReason) {
	s.closePartial(i, at, price, s.position.RemainingQuantity, reason)
}

// finalize seals the trade record, appends it to the ledger exactly once,
// and starts the post-close cooldown window.
func (s *simulator) finalize(i int, at time.Time, price float64) {
	trade := s.openTrade
	trade.CloseTime = at
	trade.ClosePrice = price
	trade.Fees = trade.EntryFee
	for _, exit := range trade.Exits {
		trade.GrossPnL += exit.GrossPnL
		trade.Fees += exit.Fee
	}
	trade.NetPnL = trade.GrossPnL - trade.Fees

	s.trades = append(s.trades, *trade)
	s.position = nil
	s.openTrade = nil
	s.cooldownUntil = i + s.cfg.Exits.CooldownBars + 1
}

func notional(price, quantity, contractMultiplier float64) float64 {
	n := price * quantity * contractMultiplier
	if n < 0 {
		return -n
	}
	return n
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
