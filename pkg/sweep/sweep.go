// Package sweep runs the backtest over many strategy configurations,
// exploring a parameter grid. Every evaluation is an independent pure
// backtest over the same candles, so evaluations run safely in parallel.
package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/raykavin/rangerev/pkg/logger"
)

// ParameterType defines the data type of a swept parameter
type ParameterType string

const (
	TypeInt         ParameterType = "int"
	TypeFloat       ParameterType = "float"
	TypeBool        ParameterType = "bool"
	TypeCategorical ParameterType = "categorical"
)

// Parameter describes one configuration field to sweep. Name is the
// dotted configuration path, e.g. "risk.riskPctPerTrade".
type Parameter struct {
	Name        string
	Description string
	Min         any
	Max         any
	Step        any
	Options     []any
	Type        ParameterType
}

// ParameterSet maps dotted configuration paths to concrete values
type ParameterSet map[string]any

// Result is the outcome of evaluating a single parameter set
type Result struct {
	Parameters ParameterSet
	Metrics    map[string]float64
	Duration   time.Duration
}

// MetricName identifies a sweep target metric
type MetricName string

const (
	MetricNetPnL       MetricName = "net_pnl"
	MetricWinRate      MetricName = "win_rate_pct"
	MetricPayoff       MetricName = "payoff"
	MetricDrawdown     MetricName = "max_drawdown_pct"
	MetricTradeCount   MetricName = "trade_count"
	MetricEndingEquity MetricName = "ending_equity"
)

// Evaluator runs a backtest for one parameter set and reports its metrics
type Evaluator interface {
	Evaluate(ctx context.Context, params ParameterSet) (*Result, error)
}

// Config holds the sweep settings
type Config struct {
	Parameters    []Parameter
	MaxIterations int
	Parallelism   int
	Logger        logger.Logger
	TargetMetric  MetricName
	Maximize      bool
	TopN          int
	ShowProgress  bool
}

// NewConfig creates a default sweep configuration
func NewConfig() *Config {
	return &Config{
		MaxIterations: 100,
		Parallelism:   1,
		TargetMetric:  MetricNetPnL,
		Maximize:      true,
		TopN:          5,
	}
}

// WithParameters adds parameters to the configuration
func (c *Config) WithParameters(params ...Parameter) *Config {
	c.Parameters = append(c.Parameters, params...)
	return c
}

// WithMaxIterations sets the maximum number of evaluations
func (c *Config) WithMaxIterations(iterations int) *Config {
	c.MaxIterations = iterations
	return c
}

// WithParallelism sets the number of concurrent evaluations
func (c *Config) WithParallelism(n int) *Config {
	c.Parallelism = n
	return c
}

// WithLogger sets the logger
func (c *Config) WithLogger(log logger.Logger) *Config {
	c.Logger = log
	return c
}

// WithTargetMetric sets the metric to optimize and its direction
func (c *Config) WithTargetMetric(metric MetricName, maximize bool) *Config {
	c.TargetMetric = metric
	c.Maximize = maximize
	return c
}

// WithProgress toggles terminal progress reporting
func (c *Config) WithProgress(show bool) *Config {
	c.ShowProgress = show
	return c
}

// ValidateParameterSet checks a parameter set against its definitions
func ValidateParameterSet(params ParameterSet, definitions []Parameter) error {
	for _, def := range definitions {
		value, exists := params[def.Name]
		if !exists {
			return fmt.Errorf("missing parameter: %s", def.Name)
		}

		switch def.Type {
		case TypeInt:
			if _, ok := value.(int); !ok {
				return fmt.Errorf("parameter %s must be an integer", def.Name)
			}
		case TypeFloat:
			if _, ok := value.(float64); !ok {
				return fmt.Errorf("parameter %s must be a float", def.Name)
			}
		case TypeBool:
			if _, ok := value.(bool); !ok {
				return fmt.Errorf("parameter %s must be a boolean", def.Name)
			}
		case TypeCategorical:
			found := false
			for _, option := range def.Options {
				if option == value {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("parameter %s has invalid value %v", def.Name, value)
			}
		}
	}
	return nil
}

// resultSorter orders results by a metric
type resultSorter struct {
	results  []*Result
	metric   string
	maximize bool
}

func (s resultSorter) Len() int      { return len(s.results) }
func (s resultSorter) Swap(i, j int) { s.results[i], s.results[j] = s.results[j], s.results[i] }

func (s resultSorter) Less(i, j int) bool {
	vi := s.results[i].Metrics[s.metric]
	vj := s.results[j].Metrics[s.metric]
	if s.maximize {
		return vi > vj
	}
	return vi < vj
}
