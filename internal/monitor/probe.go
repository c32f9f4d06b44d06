package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// Probe reads the resource counters of one process.
type Probe interface {
	// CPUTime returns accumulated user+system time.
	CPUTime(ctx context.Context) (time.Duration, error)
	// RSS returns resident memory in bytes.
	RSS(ctx context.Context) (uint64, error)
}

// ProbeFactory attaches a Probe to a running pid.
type ProbeFactory func(ctx context.Context, pid int) (Probe, error)

type processProbe struct {
	p *process.Process
}

// NewProcessProbe attaches to pid through the operating system's process
// table.
func NewProcessProbe(ctx context.Context, pid int) (Probe, error) {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return nil, fmt.Errorf("attaching to pid %d: %w", pid, err)
	}
	return &processProbe{p: p}, nil
}

func (pp *processProbe) CPUTime(ctx context.Context) (time.Duration, error) {
	t, err := pp.p.TimesWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return time.Duration((t.User + t.System) * float64(time.Second)), nil
}

func (pp *processProbe) RSS(ctx context.Context) (uint64, error) {
	m, err := pp.p.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return m.RSS, nil
}
