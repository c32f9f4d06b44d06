// Package report writes the plain-text run report: the flagstat block
// first, then a blank line and the derived metrics, as "key: value" lines.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sznuper/alignpipe/internal/flagstat"
	"github.com/sznuper/alignpipe/internal/monitor"
	"github.com/sznuper/alignpipe/internal/quality"
)

// FormatStats writes the present flagstat fields in report order.
func FormatStats(w io.Writer, s flagstat.Stats) error {
	for _, f := range s.Fields() {
		if _, err := fmt.Fprintf(w, "%s: %s\n", f.Key, f.Value); err != nil {
			return err
		}
	}
	return nil
}

// FormatMetrics writes the always-present metrics block.
func FormatMetrics(w io.Writer, q quality.Metrics, u monitor.Summary) error {
	_, err := fmt.Fprintf(w, "\n"+
		"Average base quality (Phred): %.2f\n"+
		"Average mapping quality (MAPQ): %.2f\n"+
		"Max CPU usage (%%): %.2f\n"+
		"CPU usage (%%) - min: %.2f, max: %.2f, avg: %.2f\n"+
		"Max Memory usage (MB): %.2f\n"+
		"Memory usage (MB) - min: %.2f, max: %.2f, avg: %.2f\n",
		q.BaseQuality,
		q.MappingQuality,
		u.CPU.Max,
		u.CPU.Min, u.CPU.Max, u.CPU.Avg,
		u.Memory.Max,
		u.Memory.Min, u.Memory.Max, u.Memory.Avg,
	)
	return err
}

// WriteStats creates or truncates the report with the flagstat block.
func WriteStats(path string, s flagstat.Stats) error {
	return writeFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, func(w io.Writer) error {
		return FormatStats(w, s)
	})
}

// AppendMetrics appends the metrics block to an existing report.
func AppendMetrics(path string, q quality.Metrics, u monitor.Summary) error {
	return writeFile(path, os.O_APPEND|os.O_WRONLY, func(w io.Writer) error {
		return FormatMetrics(w, q, u)
	})
}

// Write produces the full report for one run, replacing any previous one.
func Write(path string, s flagstat.Stats, q quality.Metrics, u monitor.Summary) error {
	if err := WriteStats(path, s); err != nil {
		return err
	}
	return AppendMetrics(path, q, u)
}

func writeFile(path string, flag int, fill func(io.Writer) error) error {
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return fmt.Errorf("opening report: %w", err)
	}

	bw := bufio.NewWriter(f)
	if err := fill(bw); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report: %w", err)
	}
	return nil
}
