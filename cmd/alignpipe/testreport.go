package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sznuper/alignpipe/internal/testreport"
)

var testreportCmd = &cobra.Command{
	Use:   "testreport",
	Short: "Render acceptance-test results from CSV into Markdown",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")

		if err := testreport.Generate(input, output, time.Now()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Markdown report generated: %s\n", output)
		return nil
	},
}

func init() {
	testreportCmd.Flags().StringP("input", "i", "", "input CSV file (e.g. test_results.csv)")
	testreportCmd.Flags().StringP("output", "o", "test_report.md", "output Markdown file")
	_ = testreportCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(testreportCmd)
}
