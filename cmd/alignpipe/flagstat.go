package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sznuper/alignpipe/internal/flagstat"
	"github.com/sznuper/alignpipe/internal/report"
)

var flagstatCmd = &cobra.Command{
	Use:   "flagstat <file>",
	Short: "Print the alignment counts extracted from a flagstat summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		stats, err := flagstat.Read(f)
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		return report.FormatStats(cmd.OutOrStdout(), stats)
	},
}

func init() {
	rootCmd.AddCommand(flagstatCmd)
}
