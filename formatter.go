package eventscout

import (
	"fmt"
	"strings"
	"time"
)

// RecordFormatter renders a record as a block for a category store file.
type RecordFormatter interface {
	FormatRecord(rec *Record) string
}

// FormatRuns formats runs for display, one per line, newest first as given.
// Uses the title if available, falls back to the source.
func FormatRuns(runs []*Run) string {
	if len(runs) == 0 {
		return ""
	}

	lines := make([]string, 0, len(runs))
	for _, run := range runs {
		label := run.Title
		if label == "" {
			label = run.Source
		}
		line := fmt.Sprintf("%s  %-7s  %s", run.CreatedAt.Local().Format(time.DateTime), run.Status, label)
		switch {
		case run.Status == RunFailed && run.Error != "":
			line += "  (" + run.Error + ")"
		case run.File != "":
			line += "  -> " + run.File
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
