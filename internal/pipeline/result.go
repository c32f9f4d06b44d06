package pipeline

import (
	"time"

	"github.com/sznuper/alignpipe/internal/flagstat"
	"github.com/sznuper/alignpipe/internal/monitor"
	"github.com/sznuper/alignpipe/internal/quality"
)

// State is the terminal state of a run.
type State string

const (
	Succeeded State = "succeeded"
	Failed    State = "failed"
)

// StageRun records one finished (or failed) stage.
type StageRun struct {
	Name     string
	Duration time.Duration
	ExitCode int
}

// Result captures the outcome of one pipeline run. Errors are stored in
// Err/ErrStage rather than returned, so the caller always has something to
// display.
type Result struct {
	RunID      string
	State      State
	Stages     []StageRun
	Stats      flagstat.Stats
	Quality    quality.Metrics
	Usage      monitor.Summary
	ReportPath string
	Warnings   []string
	Notified   []string
	Duration   time.Duration
	Err        error
	ErrStage   string // a stage name, or "extract", "quality", "report"
	Stderr     string
}
