// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cmd

import (
	"fmt"

	"github.com/dalzilio/cedd/internal/problems"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available problems",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range problems.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
