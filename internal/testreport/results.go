// Package testreport renders the CSV acceptance-test log as the Markdown
// test report.
package testreport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// required columns; the rest default to empty.
var required = []string{"requirement", "acceptance_criteria", "result"}

// Row is one acceptance-test outcome.
type Row struct {
	Requirement        string
	AcceptanceCriteria string
	TestCase           string
	Result             string
	ReadsR1            string
	ReadsR2            string
	Reference          string
	Threads            string
}

// ReadCSV parses results keyed by header name, so column order is free.
func ReadCSV(rd io.Reader) ([]Row, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading results: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("reading results: missing column %q", name)
		}
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading results: %w", err)
		}

		get := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}
		rows = append(rows, Row{
			Requirement:        get("requirement"),
			AcceptanceCriteria: get("acceptance_criteria"),
			TestCase:           get("test_case"),
			Result:             get("result"),
			ReadsR1:            get("reads_R1"),
			ReadsR2:            get("reads_R2"),
			Reference:          get("reference"),
			Threads:            get("threads"),
		})
	}
}

// LoadCSV reads results from a file.
func LoadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening results: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}
