package sweep

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// GridSearch evaluates every combination of the configured parameter
// values, up to the iteration cap.
type GridSearch struct {
	cfg *Config
}

// NewGridSearch creates a grid search sweep from the configuration
func NewGridSearch(cfg *Config) (*GridSearch, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if len(cfg.Parameters) == 0 {
		return nil, fmt.Errorf("at least one parameter must be provided")
	}
	return &GridSearch{cfg: cfg}, nil
}

// Run generates all parameter combinations, evaluates them and returns
// the results sorted by the target metric, best first.
func (g *GridSearch) Run(ctx context.Context, evaluator Evaluator) ([]*Result, error) {
	if evaluator == nil {
		return nil, fmt.Errorf("evaluator cannot be nil")
	}

	sets, err := g.generateParameterSets()
	if err != nil {
		return nil, err
	}
	if g.cfg.MaxIterations > 0 && len(sets) > g.cfg.MaxIterations {
		g.logf("limiting parameter combinations from %d to %d", len(sets), g.cfg.MaxIterations)
		sets = sets[:g.cfg.MaxIterations]
	}
	g.logf("starting grid sweep with %d parameter combinations", len(sets))

	results, err := g.runEvaluations(ctx, evaluator, sets)
	if err != nil {
		return nil, err
	}

	sort.Sort(resultSorter{
		results:  results,
		metric:   string(g.cfg.TargetMetric),
		maximize: g.cfg.Maximize,
	})
	if g.cfg.TopN > 0 && len(results) > g.cfg.TopN {
		results = results[:g.cfg.TopN]
	}
	return results, nil
}

// generateParameterSets expands the parameter definitions into the full
// cartesian product of their values
func (g *GridSearch) generateParameterSets() ([]ParameterSet, error) {
	sets := []ParameterSet{make(ParameterSet)}
	for _, param := range g.cfg.Parameters {
		values, err := parameterValues(param)
		if err != nil {
			return nil, err
		}
		var next []ParameterSet
		for _, base := range sets {
			for _, value := range values {
				combined := make(ParameterSet, len(base)+1)
				for k, v := range base {
					combined[k] = v
				}
				combined[param.Name] = value
				next = append(next, combined)
			}
		}
		sets = next
	}
	return sets, nil
}

func parameterValues(param Parameter) ([]any, error) {
	switch param.Type {
	case TypeInt:
		min, okMin := param.Min.(int)
		max, okMax := param.Max.(int)
		step, okStep := param.Step.(int)
		if !okMin || !okMax || !okStep || step <= 0 {
			return nil, fmt.Errorf("parameter %s needs int min/max and a positive int step", param.Name)
		}
		var values []any
		for v := min; v <= max; v += step {
			values = append(values, v)
		}
		return values, nil
	case TypeFloat:
		min, okMin := param.Min.(float64)
		max, okMax := param.Max.(float64)
		step, okStep := param.Step.(float64)
		if !okMin || !okMax || !okStep || step <= 0 {
			return nil, fmt.Errorf("parameter %s needs float min/max and a positive float step", param.Name)
		}
		var values []any
		for v := min; v <= max+1e-12; v += step {
			values = append(values, v)
		}
		return values, nil
	case TypeBool:
		return []any{true, false}, nil
	case TypeCategorical:
		if len(param.Options) == 0 {
			return nil, fmt.Errorf("parameter %s of type %s must have options", param.Name, param.Type)
		}
		return param.Options, nil
	default:
		return nil, fmt.Errorf("parameter %s has unsupported type %q", param.Name, param.Type)
	}
}

// runEvaluations runs the parameter sets through the evaluator with the
// configured parallelism. Result order matches the input set order so a
// sweep is reproducible regardless of scheduling.
func (g *GridSearch) runEvaluations(ctx context.Context, evaluator Evaluator, sets []ParameterSet) ([]*Result, error) {
	parallelism := g.cfg.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	var bar *progressbar.ProgressBar
	if g.cfg.ShowProgress {
		bar = progressbar.Default(int64(len(sets)), "sweeping")
	}

	results := make([]*Result, len(sets))
	errs := make([]error, len(sets))
	sem := make(chan struct{}, parallelism)
	var wg sync.WaitGroup

	for i, params := range sets {
		wg.Add(1)
		go func(i int, params ParameterSet) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}

			started := time.Now()
			result, err := evaluator.Evaluate(ctx, params)
			if err != nil {
				errs[i] = fmt.Errorf("evaluating %v: %w", params, err)
				return
			}
			result.Duration = time.Since(started)
			results[i] = result
			if bar != nil {
				_ = bar.Add(1)
			}
		}(i, params)
	}
	wg.Wait()

	out := make([]*Result, 0, len(results))
	for i, result := range results {
		if errs[i] != nil {
			return nil, errs[i]
		}
		out = append(out, result)
	}
	return out, nil
}

func (g *GridSearch) logf(format string, args ...any) {
	if g.cfg.Logger != nil {
		g.cfg.Logger.Infof(format, args...)
	}
}
