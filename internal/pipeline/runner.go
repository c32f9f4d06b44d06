package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/sznuper/alignpipe/internal/config"
	"github.com/sznuper/alignpipe/internal/flagstat"
	"github.com/sznuper/alignpipe/internal/monitor"
	"github.com/sznuper/alignpipe/internal/proc"
	"github.com/sznuper/alignpipe/internal/quality"
	"github.com/sznuper/alignpipe/internal/report"
)

// Runner orchestrates align → convert → sort → index → summarize, then
// extract → quality → report, strictly in that order.
type Runner struct {
	cfg     *config.Config
	logger  *slog.Logger
	sampler *monitor.Sampler
}

// New creates a Runner for a prepared config.
func New(cfg *config.Config, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:     cfg,
		logger:  logger,
		sampler: monitor.New(cfg.SampleInterval(), logger),
	}
}

// WithSampler replaces the sampler used for the align stage.
func (r *Runner) WithSampler(s *monitor.Sampler) *Runner {
	r.sampler = s
	return r
}

// Run executes the whole pipeline once. The first failing step ends the
// run; intermediate files are left in place in that case.
func (r *Runner) Run(ctx context.Context) Result {
	start := time.Now()
	result := Result{RunID: uuid.NewString()}
	log := r.logger.With("run_id", result.RunID)

	fail := func(step string, err error) Result {
		result.State = Failed
		result.Err = err
		result.ErrStage = step
		result.Duration = time.Since(start)
		var failure *proc.ExecutionFailure
		if errors.As(err, &failure) {
			result.Stderr = failure.Stderr
		}
		log.Error("pipeline failed", "stage", step, "error", err)
		r.notify(ctx, log, &result)
		return result
	}

	p := r.cfg.Pipeline
	paths := NewPaths(p.OutputDir)
	log.Info("starting pipeline",
		"reference", p.Reference, "read1", p.Read1, "read2", p.Read2,
		"threads", p.Threads, "output_dir", p.OutputDir)

	for _, st := range Stages(p, r.cfg.Tools, paths) {
		stageLog := log.With("stage", st.Name)
		stageLog.Info("running stage", "command", st.Command.String(), "output", st.Output)

		var (
			res *proc.Result
			err error
		)
		stageStart := time.Now()
		if st.Monitor {
			var usage monitor.Summary
			res, usage, err = r.sampler.Run(ctx, st.Command)
			result.Usage = usage
		} else {
			res, err = proc.Run(ctx, st.Command)
		}

		run := StageRun{Name: st.Name, Duration: time.Since(stageStart)}
		if res != nil {
			run.ExitCode = res.ExitCode
		}
		result.Stages = append(result.Stages, run)

		if err != nil {
			return fail(st.Name, err)
		}
		if res.Stderr != "" {
			stageLog.Debug("stage stderr", "stderr", res.Stderr)
		}
		stageLog.Info("stage completed", "duration", run.Duration)

		if st.Monitor {
			r.checkBudget(stageLog, &result)
		}
	}

	stats, err := readStats(paths.RawStats)
	if err != nil {
		return fail(StepExtract, err)
	}
	result.Stats = stats
	log.Debug("flagstat extracted", "fields", len(stats.Fields()))

	metrics, err := quality.Compute(p.Read1, p.Read2, paths.SortedBAM)
	if err != nil {
		return fail(StepQuality, err)
	}
	result.Quality = metrics
	log.Info("quality computed", "base_quality", metrics.BaseQuality, "mapping_quality", metrics.MappingQuality)

	if err := report.Write(p.Report, stats, metrics, result.Usage); err != nil {
		return fail(StepReport, err)
	}
	result.ReportPath = p.Report
	log.Info("report written", "path", p.Report)

	if !p.KeepIntermediates {
		removeIntermediates(log, paths)
	}

	result.State = Succeeded
	result.Duration = time.Since(start)
	log.Info("pipeline completed", "duration", result.Duration)
	r.notify(ctx, log, &result)
	return result
}

// checkBudget warns when the monitored stage went past its ceilings. It
// never fails the run.
func (r *Runner) checkBudget(log *slog.Logger, result *Result) {
	cpuLimit := float64(r.cfg.Pipeline.Threads * 100)
	if peak := result.Usage.CPU.Max; peak > cpuLimit {
		msg := fmt.Sprintf("CPU usage exceeded limit: %.2f%% > %.0f%%", peak, cpuLimit)
		result.Warnings = append(result.Warnings, msg)
		log.Warn("cpu usage exceeded limit", "peak_percent", peak, "limit_percent", cpuLimit)
	}

	memLimit := r.cfg.Budget.MemoryLimitMB()
	if peak := result.Usage.Memory.Max; memLimit > 0 && peak > memLimit {
		msg := fmt.Sprintf("Memory usage exceeded limit: %.2f MB > %.0f MB", peak, memLimit)
		result.Warnings = append(result.Warnings, msg)
		log.Warn("memory usage exceeded limit", "peak_mb", peak, "limit_mb", memLimit)
	}
}

func readStats(path string) (flagstat.Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return flagstat.Stats{}, fmt.Errorf("opening flagstat output: %w", err)
	}
	defer f.Close()
	return flagstat.Read(f)
}

// removeIntermediates is best effort: missing files are skipped and
// removal errors only logged.
func removeIntermediates(log *slog.Logger, paths Paths) {
	for _, path := range paths.Intermediates() {
		err := os.Remove(path)
		switch {
		case err == nil:
			log.Debug("removed intermediate", "path", path)
		case errors.Is(err, os.ErrNotExist):
		default:
			log.Warn("cleanup failed", "path", path, "error", err)
		}
	}
}
