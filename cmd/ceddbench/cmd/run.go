// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cmd

import (
	"github.com/dalzilio/cedd/internal/bench"
	"github.com/dalzilio/cedd/internal/metrics"
	"github.com/dalzilio/cedd/internal/store"
	"github.com/dalzilio/cedd/internal/telemetry"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	sizes    []int
	jobs     int
	format   string
	storeDSN string
)

var runCmd = &cobra.Command{
	Use:   "run problem...",
	Short: "Solve benchmark problems",
	Long: `Solve one or more problems for each of the given sizes. The command fails if
a computation returns an error or an unexpected number of solutions.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("jobs") {
			cfg.Run.Jobs = jobs
		}
		if cmd.Flags().Changed("format") {
			cfg.Run.Format = format
		}
		if cmd.Flags().Changed("store") {
			cfg.Store.DSN = storeDSN
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		tasks, err := bench.Tasks(args, sizes)
		if err != nil {
			return err
		}

		r := &bench.Runner{
			Engine:    cfg.Engine,
			Jobs:      cfg.Run.Jobs,
			Log:       log,
			Collector: metrics.NewCollector(),
		}
		if cfg.Store.DSN != "" {
			s, err := store.Open(cfg.Store.DSN, telemetry.LoadFromEnv().Enabled)
			if err != nil {
				return err
			}
			defer s.Close()
			r.Store = s
		}

		log.Infof("running %d tasks with %d jobs", len(tasks), r.Jobs)
		outcomes, err := r.Run(cmd.Context(), tasks)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if cfg.Run.Format == "prom" {
			reg := prometheus.NewRegistry()
			if err := reg.Register(r.Collector); err != nil {
				return errors.Wrap(err, "cannot register collector")
			}
			if err := metrics.Write(out, reg); err != nil {
				return err
			}
		} else {
			bench.Print(out, outcomes, verbose)
		}

		if n := bench.Failures(outcomes); n > 0 {
			return errors.Errorf("%d of %d runs failed", n, len(outcomes))
		}
		return nil
	},
}

func init() {
	runCmd.Flags().IntSliceVarP(&sizes, "size", "n", []int{8}, "Sizes of the problems")
	runCmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "Number of problems solved in parallel")
	runCmd.Flags().StringVar(&format, "format", "text", "Output format: text or prom")
	runCmd.Flags().StringVar(&storeDSN, "store", "", "Save the results in this SQLite database")
	rootCmd.AddCommand(runCmd)
}
