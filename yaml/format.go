package yaml

import (
	"fmt"
	"strings"

	"github.com/fwojciec/eventscout"
	yamlv3 "gopkg.in/yaml.v3"
)

// FormatRecord renders rec as one YAML sequence item in the layout used by
// the store files. Field order is fixed. Timeline deadlines and comments are
// always single-quoted; other strings are written plain unless YAML would read
// them back differently.
func FormatRecord(rec *eventscout.Record) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("- title: %s", scalar(rec.Title))
	line("  description: %s", scalar(rec.Description))
	line("  category: %s", scalar(string(rec.Category)))
	line("  tags:")
	for _, tag := range rec.Tags {
		line("    - %s", scalar(tag))
	}
	line("  events:")
	for _, e := range rec.Events {
		line("    - year: %d", e.Year)
		line("      id: %s", scalar(e.ID))
		line("      link: %s", scalar(e.Link))
		line("      timeline:")
		for _, t := range e.Timeline {
			line("        - deadline: %s", quote(t.Deadline))
			line("          comment: %s", quote(t.Comment))
		}
		line("      timezone: %s", scalar(e.Timezone))
		line("      date: %s", scalar(e.Date))
		line("      place: %s", scalar(e.Place))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// scalar returns s as a plain YAML scalar when it decodes back to the same
// string, and single-quoted otherwise.
func scalar(s string) string {
	if s == "" || strings.ContainsAny(s, "\n\r\t\u0085\u2028\u2029") || strings.TrimSpace(s) != s {
		return quote(s)
	}
	var v any
	if err := yamlv3.Unmarshal([]byte(s), &v); err != nil {
		return quote(s)
	}
	if got, ok := v.(string); !ok || got != s {
		return quote(s)
	}
	return s
}

// quote single-quotes s, doubling embedded quotes. Line breaks, including
// NEL and the Unicode line and paragraph separators, are folded into spaces.
func quote(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\u0085", " ", "\u2028", " ", "\u2029", " ").Replace(s)
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Formatter implements eventscout.RecordFormatter with FormatRecord.
type Formatter struct{}

var _ eventscout.RecordFormatter = Formatter{}

// FormatRecord renders rec in the store layout.
func (Formatter) FormatRecord(rec *eventscout.Record) string {
	return FormatRecord(rec)
}
