// Command madata converts monthly CMS Medicare Advantage extracts and the
// yearly premium landscape tables into Parquet, optionally copying the
// results into PostgreSQL.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type app struct {
	cfg     *Config
	log     *zap.Logger
	metrics *runMetrics
}

func newRootCmd(cfg *Config) *cobra.Command {
	a := &app{cfg: cfg, log: zap.NewNop(), metrics: newRunMetrics()}

	root := &cobra.Command{
		Use:           "madata",
		Short:         "Normalize CMS Medicare Advantage extracts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.validate(); err != nil {
				return err
			}
			config := zap.NewProductionConfig()
			if a.cfg.Verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			a.log = logger
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			_ = a.log.Sync()
			return a.metrics.writeFile(a.cfg.MetricsFile)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.Root, "root", cfg.Root, "dataset root directory (MADATA_ROOT)")
	flags.StringVar(&cfg.Out, "out", cfg.Out, "output directory for Parquet files (MADATA_OUT)")
	flags.StringVar(&cfg.PG, "pg", cfg.PG, "PostgreSQL connection string; also copy results there (MADATA_PG)")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "months loaded in parallel (MADATA_WORKERS)")
	flags.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write run metrics in Prometheus text format (MADATA_METRICS_FILE)")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable debug logging (MADATA_VERBOSE)")

	root.AddCommand(
		a.enrollmentCmd(),
		a.serviceAreaCmd(),
		a.penetrationCmd(),
		a.premiumsCmd(),
	)
	return root
}

func main() {
	cfg, err := loadConfig(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "madata:", err)
		os.Exit(1)
	}
	if err := newRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "madata:", err)
		os.Exit(1)
	}
}
