// Package storage persists backtest run records so sweeps and repeated
// runs can be compared after the fact. Two backends are provided: an
// embedded BuntDB key-value store and a SQL store via GORM.
package storage

import (
	"encoding/json"
	"time"

	"github.com/raykavin/rangerev/pkg/backtest"
)

// Record is one persisted backtest run: the resolved configuration it
// ran with and the headline metrics it produced.
type Record struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Label          string    `json:"label"`
	CreatedAt      time.Time `json:"created_at"`
	Config         string    `json:"config"`
	Trades         int       `json:"trades"`
	Wins           int       `json:"wins"`
	Losses         int       `json:"losses"`
	WinRatePct     float64   `gorm:"column:win_rate_pct" json:"win_rate_pct"`
	NetPnL         float64   `gorm:"column:net_pnl" json:"net_pnl"`
	PayoffRatio    float64   `json:"payoff_ratio"`
	MaxDrawdownPct float64   `gorm:"column:max_drawdown_pct" json:"max_drawdown_pct"`
	EndingEquity   float64   `json:"ending_equity"`
}

// RunFilter selects records during retrieval
type RunFilter func(Record) bool

// RunStorage stores and retrieves backtest run records
type RunStorage interface {
	SaveRun(record *Record) error
	Runs(filters ...RunFilter) ([]*Record, error)
	Close() error
}

// NewRecord builds a record from a finished backtest result
func NewRecord(label string, result backtest.Result) (*Record, error) {
	cfg, err := json.Marshal(result.Config)
	if err != nil {
		return nil, err
	}

	m := result.Metrics
	return &Record{
		Label:          label,
		CreatedAt:      time.Now().UTC(),
		Config:         string(cfg),
		Trades:         m.Trades,
		Wins:           m.Wins,
		Losses:         m.Losses,
		WinRatePct:     m.WinRatePct,
		NetPnL:         m.NetPnL,
		PayoffRatio:    m.PayoffRatio,
		MaxDrawdownPct: m.MaxDrawdownPct,
		EndingEquity:   m.EndingEquity,
	}, nil
}

// WithLabel keeps only records carrying the given label
func WithLabel(label string) RunFilter {
	return func(r Record) bool { return r.Label == label }
}

// WithMinTrades keeps only records with at least n closed trades
func WithMinTrades(n int) RunFilter {
	return func(r Record) bool { return r.Trades >= n }
}
