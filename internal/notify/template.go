package notify

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// DefaultTemplate is used for targets without their own template.
const DefaultTemplate = `{{run.status_emoji}} alignpipe {{run.status | upper}} run {{run.id | trunc 8}}` +
	`{{with run.stage}} at {{.}}{{end}}{{with run.error}}: {{.}}{{end}}` +
	`{{with stats.total}} ({{.}} reads){{end}}{{with run.report}} report={{.}}{{end}}`

// TemplateData holds all data available to notification templates.
type TemplateData struct {
	Run   map[string]string
	Stats map[string]string
	Usage map[string]string
}

// Summary is the subset of a finished run a message can mention.
type Summary struct {
	RunID    string
	Status   string
	Stage    string
	Error    string
	Report   string
	Duration string
	Stats    map[string]string
	Usage    map[string]string
}

// BuildTemplateData flattens a run summary into template maps.
func BuildTemplateData(s Summary) TemplateData {
	run := map[string]string{
		"id":           s.RunID,
		"status":       s.Status,
		"stage":        s.Stage,
		"error":        s.Error,
		"report":       s.Report,
		"duration":     s.Duration,
		"status_emoji": statusEmoji(s.Status),
	}

	stats := make(map[string]string, len(s.Stats))
	for k, v := range s.Stats {
		stats[k] = v
	}
	usage := make(map[string]string, len(s.Usage))
	for k, v := range s.Usage {
		usage[k] = v
	}

	return TemplateData{Run: run, Stats: stats, Usage: usage}
}

func statusEmoji(status string) string {
	switch status {
	case "succeeded":
		return "\U0001f7e2" // 🟢
	case "failed":
		return "\U0001f534" // 🔴
	default:
		return "\u2753" // ❓
	}
}

// Render executes a Go text/template string with Sprig functions and the
// accessor functions run, stats and usage.
func Render(tmplStr string, data TemplateData) (string, error) {
	funcMap := sprig.TxtFuncMap()

	// {{run.status}}: "run" returns the map, ".status" picks the key.
	funcMap["run"] = func() map[string]string { return data.Run }
	funcMap["stats"] = func() map[string]string { return data.Stats }
	funcMap["usage"] = func() map[string]string { return data.Usage }

	t, err := template.New("notify").Funcs(funcMap).Option("missingkey=zero").Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}
