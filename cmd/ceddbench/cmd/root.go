// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cmd

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/dalzilio/cedd/internal/config"
	"github.com/dalzilio/cedd/internal/telemetry"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	cfg      *config.Config
	log      *logger.L
	shutdown telemetry.ShutdownFunc
)

var rootCmd = &cobra.Command{
	Use:   "ceddbench",
	Short: "Benchmarks for the cedd BDD library",
	Long: `ceddbench solves classical problems using Binary Decision Diagrams and
reports the number of solutions together with statistics on the node table,
the caches and the garbage collector.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return err
		}
		if verbose {
			cfg.Log.Console = true
			cfg.Log.Level = "debug"
		}
		if err := os.MkdirAll(cfg.Log.Directory, 0755); err != nil {
			return errors.Wrap(err, "cannot create log directory")
		}
		if err := logger.Initialise(cfg.Log.Configuration()); err != nil {
			return errors.Wrap(err, "cannot initialise logging")
		}
		log = logger.New("ceddbench")
		log.Debugf("configuration: %+v", cfg)

		shutdown, err = telemetry.Init(cmd.Context(), telemetry.LoadFromEnv())
		if err != nil {
			log.Warnf("telemetry disabled: %s", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	finalise()
	if err != nil {
		os.Exit(1)
	}
}

func finalise() {
	if shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil && log != nil {
			log.Warnf("telemetry shutdown: %s", err)
		}
	}
	if log != nil {
		logger.Finalise()
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file (YAML, TOML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	binName := BinName()
	rootCmd.Example = `  # Solve the 8 queens problem
  ` + binName + ` run nqueens -n 8

  # Solve Milner's scheduler for 4 to 8 cyclers with 4 jobs
  ` + binName + ` run milner -n 4,5,6,7,8 -j 4

  # Export statistics in the Prometheus text format
  ` + binName + ` run nqueens chain -n 10 --format prom

  # Keep a history of the results
  ` + binName + ` run nqueens -n 10 --store results.db
  ` + binName + ` history nqueens -n 10 --store results.db`
}

// BinName returns the base name of the current executable.
func BinName() string {
	return filepath.Base(os.Args[0])
}
