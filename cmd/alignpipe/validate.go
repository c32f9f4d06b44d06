package main

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/sznuper/alignpipe/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration and the external tools without running",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		p := newPalette(w)
		failed := false
		for _, tool := range []string{cfg.Tools.Aligner, cfg.Tools.Samtools} {
			path, err := exec.LookPath(tool)
			if err != nil {
				fmt.Fprintf(w, "%s %s: not found\n", p.fail.Render("✗"), tool)
				failed = true
				continue
			}
			fmt.Fprintf(w, "%s %s: %s\n", p.ok.Render("✓"), tool, path)
		}

		printPipeline(w, cfg)
		if failed {
			return fmt.Errorf("required tools are missing")
		}
		return nil
	},
}

func init() {
	registerOptionFlags(validateCmd)
	rootCmd.AddCommand(validateCmd)
}

func printPipeline(w io.Writer, cfg *config.Config) {
	mode := "single-ended"
	if cfg.Pipeline.Paired() {
		mode = "paired-end"
	}
	fmt.Fprintf(w, "  Input: %s (%s)\n", cfg.Pipeline.Read1, mode)
	if cfg.Pipeline.Paired() {
		fmt.Fprintf(w, "         %s\n", cfg.Pipeline.Read2)
	}
	fmt.Fprintf(w, "  Reference: %s\n", cfg.Pipeline.Reference)
	fmt.Fprintf(w, "  Threads: %d\n", cfg.Pipeline.Threads)
	fmt.Fprintf(w, "  Report: %s\n", cfg.Pipeline.Report)
	fmt.Fprintf(w, "  Memory limit: %g GB\n", cfg.Budget.MemoryLimitGB)
	fmt.Fprintf(w, "  Notify targets: %d\n", len(cfg.Notify))
}
