package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sznuper/alignpipe/internal/pipeline"
)

const stderrLines = 5

type palette struct {
	ok, fail, warn, dim lipgloss.Style
}

// newPalette styles only when w is a color-capable terminal.
func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	return palette{
		ok:   r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		fail: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		warn: r.NewStyle().Foreground(lipgloss.Color("3")),
		dim:  r.NewStyle().Faint(true),
	}
}

func printResult(w io.Writer, r pipeline.Result) {
	p := newPalette(w)

	if r.Err != nil {
		fmt.Fprintf(w, "%s Run %s failed at %s\n", p.fail.Render("✗"), r.RunID, r.ErrStage)
		fmt.Fprintf(w, "  Error: %s\n", r.Err)
		if r.Stderr != "" {
			fmt.Fprintln(w, "  Stderr:")
			for _, line := range tail(r.Stderr, stderrLines) {
				fmt.Fprintf(w, "    %s\n", p.dim.Render(line))
			}
		}
	} else {
		fmt.Fprintf(w, "%s Run %s succeeded in %s\n", p.ok.Render("✓"), r.RunID, r.Duration.Round(time.Millisecond))
	}

	if len(r.Stages) > 0 {
		fmt.Fprintln(w, "  Stages:")
		for _, s := range r.Stages {
			fmt.Fprintf(w, "    %-10s %s\n", s.Name, s.Duration.Round(time.Millisecond))
		}
	}

	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "  %s %s\n", p.warn.Render("Warning:"), warning)
	}
	if r.ReportPath != "" {
		fmt.Fprintf(w, "  Report: %s\n", r.ReportPath)
	}
	if len(r.Notified) > 0 {
		fmt.Fprintf(w, "  Notified: %s\n", strings.Join(r.Notified, ", "))
	}
}

// tail returns the last n non-empty lines of s.
func tail(s string, n int) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
