package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sznuper/alignpipe/internal/notify"
)

// notify delivers the run summary to every configured target. Delivery
// problems are logged and never change the run's state.
func (r *Runner) notify(ctx context.Context, log *slog.Logger, result *Result) {
	if len(r.cfg.Notify) == 0 || ctx.Err() != nil {
		return
	}

	refs := make([]notify.Ref, len(r.cfg.Notify))
	for i, n := range r.cfg.Notify {
		refs[i] = notify.Ref{URL: n.URL, Template: n.Template}
	}

	targets, err := notify.ResolveTargets(refs, notify.DefaultTemplate, notify.BuildTemplateData(summarize(result)))
	if err != nil {
		log.Error("rendering notification failed", "error", err)
		return
	}

	for _, t := range targets {
		service := notify.Service(t.URL)
		if err := notify.Send(t); err != nil {
			log.Error("notification failed", "service", service, "error", err)
			continue
		}
		result.Notified = append(result.Notified, service)
		log.Info("notification sent", "service", service)
	}
}

func summarize(result *Result) notify.Summary {
	s := notify.Summary{
		RunID:    result.RunID,
		Status:   string(result.State),
		Stage:    result.ErrStage,
		Report:   result.ReportPath,
		Duration: result.Duration.Round(time.Millisecond).String(),
		Stats:    map[string]string{},
		Usage: map[string]string{
			"max_cpu":    fmt.Sprintf("%.2f", result.Usage.CPU.Max),
			"max_memory": fmt.Sprintf("%.2f", result.Usage.Memory.Max),
		},
	}
	if result.Err != nil {
		s.Error = result.Err.Error()
	}
	if t := result.Stats.Total; t != nil {
		s.Stats["total"] = fmt.Sprint(*t)
	}
	if m := result.Stats.Mapped; m != nil {
		s.Stats["mapped"] = m.String()
	}
	return s
}
