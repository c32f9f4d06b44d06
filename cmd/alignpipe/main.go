package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sznuper/alignpipe/internal/logging"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "alignpipe",
	Short: "Short-read alignment pipeline",
	Long: "alignpipe aligns sequencing reads against a reference, converts, sorts and indexes the " +
		"alignments, and writes a plain-text report with alignment counts, quality figures and " +
		"the aligner's CPU and memory usage.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logging.FormatAuto, "log format (auto, console, json)")
}

func setupLogger() (*slog.Logger, error) {
	return logging.New(logging.Options{Level: logLevel, Format: logFormat, Writer: os.Stderr})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
