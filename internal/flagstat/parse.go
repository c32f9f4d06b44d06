// Package flagstat extracts alignment counts from a samtools flagstat
// summary. Lines that are not recognised are skipped, and fields whose line
// never appears are left nil rather than zeroed.
package flagstat

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Count is a read count with its percentage. Text is the percentage as it
// appears in the report: verbatim from the tool for parsed values, two
// decimals for derived ones.
type Count struct {
	N       int64
	Percent float64
	Text    string
}

func (c Count) String() string {
	return fmt.Sprintf("%d (%s%%)", c.N, c.Text)
}

func derived(n int64, pct float64) *Count {
	return &Count{N: n, Percent: pct, Text: strconv.FormatFloat(pct, 'f', 2, 64)}
}

// Stats is the typed flagstat record.
type Stats struct {
	Total      *int64
	Mapped     *Count
	Unmapped   *Count
	Duplicated *Count
	Singletons *Count
}

// Field is one "key: value" report line.
type Field struct {
	Key   string
	Value string
}

// Fields returns the present fields in report order.
func (s Stats) Fields() []Field {
	var out []Field
	if s.Total != nil {
		out = append(out, Field{"Total reads", strconv.FormatInt(*s.Total, 10)})
	}
	add := func(key string, c *Count) {
		if c != nil {
			out = append(out, Field{key, c.String()})
		}
	}
	add("Mapped reads", s.Mapped)
	add("Unmapped reads", s.Unmapped)
	add("Duplicated reads", s.Duplicated)
	add("Singletons", s.Singletons)
	return out
}

// raw collects what the matchers saw before derivation.
type raw struct {
	total      *int64
	mapped     *Count
	duplicates *int64
	singletons *Count
}

// matcher recognises one line shape. accept filters lines cheaply before
// the pattern is applied.
type matcher struct {
	accept  func(line string) bool
	pattern *regexp.Regexp
	apply   func(r *raw, m []string)
}

var matchers = []matcher{
	{
		accept:  func(l string) bool { return strings.Contains(l, "in total") },
		pattern: regexp.MustCompile(`(\d+) \+ \d+ in total`),
		apply: func(r *raw, m []string) {
			if n, ok := atoi(m[1]); ok {
				r.total = &n
			}
		},
	},
	{
		accept: func(l string) bool {
			return strings.Contains(l, "mapped (") && !strings.Contains(l, "primary mapped")
		},
		pattern: regexp.MustCompile(`(\d+) \+ \d+ mapped \(([\d.]+)%`),
		apply: func(r *raw, m []string) {
			r.mapped = count(m[1], m[2])
		},
	},
	{
		accept: func(l string) bool {
			return strings.Contains(l, "duplicates") && !strings.Contains(l, "primary duplicates")
		},
		pattern: regexp.MustCompile(`(\d+) \+ \d+ duplicates`),
		apply: func(r *raw, m []string) {
			if n, ok := atoi(m[1]); ok {
				r.duplicates = &n
			}
		},
	},
	{
		accept:  func(l string) bool { return strings.Contains(l, "singletons (") },
		pattern: regexp.MustCompile(`(\d+) \+ \d+ singletons \(([\d.]+)%`),
		apply: func(r *raw, m []string) {
			r.singletons = count(m[1], m[2])
		},
	},
}

// Parse extracts Stats from flagstat text. A line is claimed by the first
// matcher that accepts it.
func Parse(text string) Stats {
	var r raw
	for _, line := range strings.Split(text, "\n") {
		scan(&r, line)
	}
	return r.derive()
}

// Read is Parse over a reader.
func Read(rd io.Reader) (Stats, error) {
	var r raw
	sc := bufio.NewScanner(rd)
	for sc.Scan() {
		scan(&r, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return Stats{}, fmt.Errorf("reading flagstat: %w", err)
	}
	return r.derive(), nil
}

func scan(r *raw, line string) {
	for _, m := range matchers {
		if !m.accept(line) {
			continue
		}
		if sub := m.pattern.FindStringSubmatch(line); sub != nil {
			m.apply(r, sub)
		}
		return
	}
}

// derive computes the fields that are not printed by the tool.
func (r raw) derive() Stats {
	s := Stats{Total: r.total, Mapped: r.mapped, Singletons: r.singletons}

	// mapped above total is inconsistent input, not a negative count
	if r.total != nil && r.mapped != nil && r.mapped.N <= *r.total {
		s.Unmapped = derived(*r.total-r.mapped.N, 100-r.mapped.Percent)
	}
	if r.total != nil && *r.total != 0 && r.duplicates != nil {
		s.Duplicated = derived(*r.duplicates, 100*float64(*r.duplicates)/float64(*r.total))
	}
	return s
}

// count builds a parsed Count, or nil when either number does not parse.
func count(n, pct string) *Count {
	v, ok := atoi(n)
	if !ok {
		return nil
	}
	p, err := strconv.ParseFloat(pct, 64)
	if err != nil {
		return nil
	}
	return &Count{N: v, Percent: p, Text: pct}
}

// The patterns only capture digit runs, so only overflow fails here.
func atoi(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}
