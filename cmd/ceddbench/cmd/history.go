// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cmd

import (
	"fmt"

	"github.com/dalzilio/cedd/internal/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var limit int

var historyCmd = &cobra.Command{
	Use:   "history [problem]",
	Short: "Show the results saved in a database",
	Long: `Show the results saved with the --store option of the run command. Without
argument, we list the most recent runs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("store") {
			cfg.Store.DSN = storeDSN
		}
		if cfg.Store.DSN == "" {
			return errors.New("no database, use option --store")
		}
		s, err := store.Open(cfg.Store.DSN, false)
		if err != nil {
			return err
		}
		defer s.Close()

		var runs []store.Run
		if len(args) == 0 {
			runs, err = s.Recent(cmd.Context(), limit)
		} else {
			if len(sizes) != 1 {
				return errors.New("option --size requires exactly one value")
			}
			runs, err = s.History(cmd.Context(), args[0], sizes[0])
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, r := range runs {
			status := "OK"
			if !r.Ok {
				status = "FAILED"
			}
			fmt.Fprintf(out, "%s  %s(%d)  %-6s  %s solutions  %d nodes  %d GC  %s\n",
				r.CreateTime.Format("2006-01-02 15:04:05"), r.Problem, r.Size, status, r.Count, r.Nodes, r.GCCount, r.Duration)
			if r.Error != "" {
				fmt.Fprintf(out, "    %s\n", r.Error)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntSliceVarP(&sizes, "size", "n", []int{8}, "Size of the problem")
	historyCmd.Flags().IntVar(&limit, "limit", 20, "Maximal number of runs shown")
	historyCmd.Flags().StringVar(&storeDSN, "store", "", "SQLite database with the results")
	rootCmd.AddCommand(historyCmd)
}
