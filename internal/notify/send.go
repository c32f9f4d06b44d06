package notify

import (
	"fmt"
	"strings"

	"github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/types"
)

// Ref is one configured notification target before rendering.
type Ref struct {
	URL      string
	Template string
}

// Target holds a fully resolved notification target ready to send.
type Target struct {
	URL     string
	Message string
}

// ResolveTargets renders the message for every ref. An empty per-target
// template falls back to defaultTemplate.
func ResolveTargets(refs []Ref, defaultTemplate string, data TemplateData) ([]Target, error) {
	targets := make([]Target, 0, len(refs))

	for i, ref := range refs {
		tmplStr := defaultTemplate
		if ref.Template != "" {
			tmplStr = ref.Template
		}

		msg, err := Render(tmplStr, data)
		if err != nil {
			return nil, fmt.Errorf("rendering template for target %d: %w", i, err)
		}

		targets = append(targets, Target{URL: ref.URL, Message: msg})
	}

	return targets, nil
}

// Send delivers a notification to a single target via Shoutrrr.
func Send(t Target) error {
	sender, err := shoutrrr.CreateSender(t.URL)
	if err != nil {
		return fmt.Errorf("creating sender for %s: %w", Service(t.URL), err)
	}

	params := types.Params{}
	for _, e := range sender.Send(t.Message, &params) {
		if e != nil {
			return fmt.Errorf("sending to %s: %w", Service(t.URL), e)
		}
	}

	return nil
}

// Service returns the scheme of a service URL, which is safe to log
// where the full URL would leak tokens.
func Service(rawURL string) string {
	scheme, _, _ := strings.Cut(rawURL, ":")
	return scheme
}
