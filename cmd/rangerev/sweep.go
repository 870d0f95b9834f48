package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raykavin/rangerev/pkg/sweep"
)

var (
	paramsFile    string
	parallelism   int
	maxIterations int
	topN          int
	targetMetric  string
	minimize      bool
)

func buildSweepCmd() *cobra.Command {
	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Grid search over strategy parameters",
		RunE:  runSweep,
	}

	sweepCmd.Flags().StringVarP(&candlesFile, "candles", "c", "", "CSV candle file (e.g. ./btc_15m.csv)")
	sweepCmd.Flags().StringVarP(&configFile, "config", "f", "", "JSON configuration overrides file")
	sweepCmd.Flags().StringVarP(&paramsFile, "params", "p", "", "JSON parameter grid definition file")
	sweepCmd.Flags().StringVar(&execTF, "exec-tf", "15m", "Timeframe of the CSV candles")
	sweepCmd.Flags().StringVar(&primaryTF, "primary-tf", "1h", "Primary range timeframe")
	sweepCmd.Flags().StringVar(&secondaryTF, "secondary-tf", "4h", "Secondary range timeframe")
	sweepCmd.Flags().Float64VarP(&initialEquity, "equity", "e", 10000, "Initial account equity")
	sweepCmd.Flags().IntVar(&parallelism, "parallelism", 4, "Concurrent evaluations")
	sweepCmd.Flags().IntVar(&maxIterations, "max-iterations", 500, "Cap on parameter combinations")
	sweepCmd.Flags().IntVar(&topN, "top", 10, "Number of best results to report")
	sweepCmd.Flags().StringVar(&targetMetric, "metric", string(sweep.MetricNetPnL), "Metric to optimize")
	sweepCmd.Flags().BoolVar(&minimize, "minimize", false, "Minimize the metric instead of maximizing")

	sweepCmd.MarkFlagRequired("candles")
	sweepCmd.MarkFlagRequired("params")

	return sweepCmd
}

func runSweep(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	parameters, err := loadParameters(paramsFile)
	if err != nil {
		return fmt.Errorf("loading parameter grid: %w", err)
	}

	baseOverrides, err := loadOverrides(configFile)
	if err != nil {
		return fmt.Errorf("loading configuration overrides: %w", err)
	}

	exec, primary, secondary, err := loadSeries()
	if err != nil {
		return err
	}

	cfg := sweep.NewConfig().
		WithParameters(parameters...).
		WithMaxIterations(maxIterations).
		WithParallelism(parallelism).
		WithLogger(log).
		WithTargetMetric(sweep.MetricName(targetMetric), !minimize).
		WithProgress(true)
	cfg.TopN = topN

	search, err := sweep.NewGridSearch(cfg)
	if err != nil {
		return err
	}

	evaluator := &sweep.BacktestEvaluator{
		BaseOverrides: baseOverrides,
		Exec:          exec,
		Primary:       primary,
		Secondary:     secondary,
		InitialEquity: initialEquity,
	}

	results, err := search.Run(cmd.Context(), evaluator)
	if err != nil {
		return err
	}

	for rank, result := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "#%d %s=%.4f params=%v\n",
			rank+1, targetMetric, result.Metrics[targetMetric], result.Parameters)
	}
	return nil
}

// parameterSpec is the JSON shape of one grid entry
type parameterSpec struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Options []any   `json:"options"`
}

// loadParameters reads the grid definition. JSON numbers arrive as
// floats, so int parameters are converted back before the sweep sees
// them.
func loadParameters(file string) ([]sweep.Parameter, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var specs []parameterSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, err
	}

	parameters := make([]sweep.Parameter, 0, len(specs))
	for _, spec := range specs {
		param := sweep.Parameter{
			Name:    spec.Name,
			Type:    sweep.ParameterType(spec.Type),
			Options: spec.Options,
		}
		switch param.Type {
		case sweep.TypeInt:
			param.Min = int(spec.Min)
			param.Max = int(spec.Max)
			param.Step = int(spec.Step)
		case sweep.TypeFloat:
			param.Min = spec.Min
			param.Max = spec.Max
			param.Step = spec.Step
		}
		parameters = append(parameters, param)
	}
	return parameters, nil
}

// loadOverrides reads the base configuration overrides as a raw nested
// map so swept parameters can layer on top before resolution
func loadOverrides(file string) (map[string]any, error) {
	if file == "" {
		return map[string]any{}, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var overrides map[string]any
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}
