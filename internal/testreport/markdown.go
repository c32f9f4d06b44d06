package testreport

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

const markdownTemplate = `# Date {{ .Date | date "2006-01-02 15:04:05" }}

# Test results:
{{ range .Rows }}
## Test {{ .Requirement }}
Acceptance criteria: {{ .AcceptanceCriteria }}
Reads used: {{ .ReadsR1 }}{{ with .ReadsR2 }} + {{ . }}{{ end }}
Reference genome: {{ .Reference }}
Threads: {{ .Threads }}
Result: {{ .Result }}
{{ end }}`

var tmpl = template.Must(template.New("testreport").Funcs(sprig.TxtFuncMap()).Parse(markdownTemplate))

// Render writes the Markdown report dated at.
func Render(w io.Writer, rows []Row, at time.Time) error {
	data := struct {
		Date time.Time
		Rows []Row
	}{Date: at, Rows: rows}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering test report: %w", err)
	}
	return nil
}

// Generate converts the CSV at input into Markdown at output.
func Generate(input, output string, at time.Time) error {
	rows, err := LoadCSV(input)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Render(&buf, rows, at); err != nil {
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing test report: %w", err)
	}
	return nil
}
