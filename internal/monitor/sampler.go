package monitor

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sznuper/alignpipe/internal/proc"
)

const bytesPerMB = 1024 * 1024

// Sampler runs a command and polls its CPU and memory until it exits.
// It is the only component that reads child-process counters.
type Sampler struct {
	interval time.Duration
	probe    ProbeFactory
	logger   *slog.Logger
}

// New creates a Sampler polling on the given cadence.
func New(interval time.Duration, logger *slog.Logger) *Sampler {
	return &Sampler{interval: interval, probe: NewProcessProbe, logger: logger}
}

// WithProbe replaces the counter source.
func (s *Sampler) WithProbe(f ProbeFactory) *Sampler {
	s.probe = f
	return s
}

// Run starts c, samples it concurrently, and returns once both the child
// and the sampling loop are done. The Summary is valid even when the
// command fails.
func (s *Sampler) Run(ctx context.Context, c proc.Command) (*proc.Result, Summary, error) {
	p, err := proc.Start(ctx, c)
	if err != nil {
		return nil, Summary{}, err
	}

	exited := make(chan struct{})
	var samples SampleSet

	var g errgroup.Group
	g.Go(func() error {
		probe, err := s.probe(ctx, p.PID())
		if err != nil {
			// exited before the first poll
			s.logger.Debug("sampler not attached", "pid", p.PID(), "error", err)
			return nil
		}
		samples = s.collect(ctx, probe, exited)
		return nil
	})

	result, waitErr := p.Wait()
	close(exited)
	_ = g.Wait()

	summary := samples.Summarize()
	s.logger.Debug("sampling finished", "command", c.Name, "samples", summary.Samples)
	return result, summary, waitErr
}

// collect owns the sample list until it returns. Each CPU reading covers
// the interval since the previous poll, so the first one includes start-up.
func (s *Sampler) collect(ctx context.Context, probe Probe, exited <-chan struct{}) SampleSet {
	var set SampleSet

	last, err := probe.CPUTime(ctx)
	if err != nil {
		return set
	}
	lastAt := time.Now()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-exited:
			return set
		case <-ctx.Done():
			return set
		case <-ticker.C:
		}

		cpu, err := probe.CPUTime(ctx)
		if err != nil {
			return set
		}
		rss, err := probe.RSS(ctx)
		if err != nil {
			return set
		}
		now := time.Now()

		// exited but not yet reaped
		if rss == 0 {
			continue
		}

		set = append(set, Sample{
			CPU:      percent(cpu-last, now.Sub(lastAt)),
			MemoryMB: float64(rss) / bytesPerMB,
		})
		last, lastAt = cpu, now
	}
}

func percent(busy, wall time.Duration) float64 {
	if wall <= 0 {
		return 0
	}
	return 100 * busy.Seconds() / wall.Seconds()
}
