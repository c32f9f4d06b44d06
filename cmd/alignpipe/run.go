package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sznuper/alignpipe/internal/config"
	"github.com/sznuper/alignpipe/internal/pipeline"
	"github.com/sznuper/alignpipe/internal/rlimit"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the alignment pipeline once",
	Long: "Aligns --read1 (and --read2 for paired-end input) against --reference, then converts, " +
		"sorts, indexes and summarizes the alignments into the output directory. Exits 1 when any stage fails.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		noNotify, _ := cmd.Flags().GetBool("no-notify")
		logger, err := setupLogger()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if noNotify {
			cfg.Notify = nil
		}

		if err := rlimit.ApplyAddressSpace(cfg.Budget.MemoryLimitBytes()); err != nil {
			if !errors.Is(err, rlimit.ErrUnsupported) {
				return fmt.Errorf("applying memory limit: %w", err)
			}
			logger.Warn("memory limit not applied", "error", err)
		} else if limit, err := rlimit.AddressSpace(); err == nil {
			logger.Debug("memory limit applied", "address_space_bytes", limit)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		result := pipeline.New(cfg, logger).Run(ctx)
		stop()

		printResult(cmd.OutOrStdout(), result)
		if result.Err != nil {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	registerOptionFlags(runCmd)
	runCmd.Flags().Bool("no-notify", false, "skip configured notifications")
	rootCmd.AddCommand(runCmd)
}

// loadConfig resolves the config file, overlays explicit flags and
// validates the result. The output directory exists afterwards.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Resolve(cfgFile)
	if err != nil {
		return nil, err
	}
	applyOptionFlags(cmd, cfg)
	if err := cfg.Prepare(); err != nil {
		return nil, err
	}
	return cfg, nil
}
