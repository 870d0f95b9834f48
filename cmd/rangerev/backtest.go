package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raykavin/rangerev/pkg/backtest"
	"github.com/raykavin/rangerev/pkg/core"
	"github.com/raykavin/rangerev/pkg/feed"
	"github.com/raykavin/rangerev/pkg/storage"
)

var (
	candlesFile   string
	configFile    string
	execTF        string
	primaryTF     string
	secondaryTF   string
	initialEquity float64
	storagePath   string
	storageDriver string
	runLabel      string
	showHistogram bool
)

func buildBacktestCmd() *cobra.Command {
	backtestCmd := &cobra.Command{
		Use:   "backtest",
		Short: "Run one backtest over a CSV candle file",
		RunE:  runBacktest,
	}

	backtestCmd.Flags().StringVarP(&candlesFile, "candles", "c", "", "CSV candle file (e.g. ./btc_15m.csv)")
	backtestCmd.Flags().StringVarP(&configFile, "config", "f", "", "JSON configuration overrides file")
	backtestCmd.Flags().StringVar(&execTF, "exec-tf", "15m", "Timeframe of the CSV candles")
	backtestCmd.Flags().StringVar(&primaryTF, "primary-tf", "1h", "Primary range timeframe")
	backtestCmd.Flags().StringVar(&secondaryTF, "secondary-tf", "4h", "Secondary range timeframe")
	backtestCmd.Flags().Float64VarP(&initialEquity, "equity", "e", 10000, "Initial account equity")
	backtestCmd.Flags().StringVarP(&storagePath, "storage", "s", "", "Optional database file to save the run record")
	backtestCmd.Flags().StringVar(&storageDriver, "storage-driver", "buntdb", "Run record database driver (buntdb or sqlite)")
	backtestCmd.Flags().StringVarP(&runLabel, "label", "l", "", "Label stored with the run record")
	backtestCmd.Flags().BoolVar(&showHistogram, "histogram", false, "Print the per-trade return histogram")

	backtestCmd.MarkFlagRequired("candles")

	return backtestCmd
}

func runBacktest(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("resolving configuration: %w", err)
	}

	exec, primary, secondary, err := loadSeries()
	if err != nil {
		return err
	}
	log.WithFields(map[string]any{
		"candles":   len(exec),
		"primary":   len(primary),
		"secondary": len(secondary),
	}).Info("candle series loaded")

	result := backtest.Run(cfg, exec, primary, secondary, initialEquity)

	fmt.Fprint(cmd.OutOrStdout(), result.Summary())
	if showHistogram {
		if err := result.WriteReturnHistogram(cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	if storagePath != "" {
		if err := saveRun(result); err != nil {
			return err
		}
		log.WithField("file", storagePath).Info("run record saved")
	}
	return nil
}

// loadSeries reads the execution candles and derives the range
// timeframes from them
func loadSeries() (exec, primary, secondary []core.Candle, err error) {
	exec, err = feed.LoadCSV(candlesFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading %s: %w", candlesFile, err)
	}

	primary, err = feed.Resample(exec, execTF, primaryTF)
	if err != nil {
		return nil, nil, nil, err
	}
	secondary, err = feed.Resample(exec, execTF, secondaryTF)
	if err != nil {
		return nil, nil, nil, err
	}
	return exec, primary, secondary, nil
}

func openStorage() (storage.RunStorage, error) {
	switch storageDriver {
	case "buntdb":
		return storage.FromFile(storagePath)
	case "sqlite":
		return storage.FromSQLite(storagePath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", storageDriver)
	}
}

func saveRun(result backtest.Result) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	record, err := storage.NewRecord(runLabel, result)
	if err != nil {
		return err
	}
	return store.SaveRun(record)
}
