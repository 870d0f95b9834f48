package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/raykavin/rangerev/pkg/config"
	"github.com/raykavin/rangerev/pkg/logger"
	logruslogger "github.com/raykavin/rangerev/pkg/logger/logrus"
	zerologger "github.com/raykavin/rangerev/pkg/logger/zerolog"
)

const dateTimeLayout = "2006-01-02 15:04:05"

func main() {
	rootCmd := &cobra.Command{
		Use:     "rangerev",
		Short:   "Range reversal strategy backtester",
		Version: "1.0.0",
	}

	rootCmd.AddCommand(buildBacktestCmd())
	rootCmd.AddCommand(buildSweepCmd())
	rootCmd.AddCommand(buildSchemaCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the logger, honoring the LOG_BACKEND, LOG_LEVEL and
// LOG_JSON environment variables
func newLogger() (logger.Logger, error) {
	viper.AutomaticEnv()
	viper.SetDefault("LOG_BACKEND", "zerolog")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_JSON", false)

	switch backend := viper.GetString("LOG_BACKEND"); backend {
	case "logrus":
		return logruslogger.New(
			viper.GetString("LOG_LEVEL"),
			viper.GetBool("LOG_JSON"),
		)
	case "zerolog":
		return zerologger.New(
			viper.GetString("LOG_LEVEL"),
			dateTimeLayout,
			true,
			viper.GetBool("LOG_JSON"),
		)
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}

// loadConfig resolves the strategy configuration, layering the JSON
// overrides file over the defaults when one is given
func loadConfig(overridesFile string) (config.Config, error) {
	if overridesFile == "" {
		return config.Default(), nil
	}

	data, err := os.ReadFile(overridesFile)
	if err != nil {
		return config.Config{}, err
	}
	return config.ResolveJSON(data)
}

func buildSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the configuration schema as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := json.MarshalIndent(config.Schema(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
