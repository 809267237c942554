// Package yaml stores records as YAML sequences, one file per category.
package yaml

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fwojciec/eventscout"
	yamlv3 "gopkg.in/yaml.v3"
)

// Ensure Store implements eventscout.RecordStore at compile time.
var _ eventscout.RecordStore = (*Store)(nil)

// Store reads and appends records in the *.yml files of a data directory.
//
// Appends are not coordinated across processes: two runs that load the
// corpus before either appends may both accept the same event id.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a Store over dir. Warnings about unreadable store files
// are written to logger; a nil logger discards them.
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// PathFor returns the store file for category c.
func (s *Store) PathFor(c eventscout.Category) string {
	return filepath.Join(s.dir, c.StoreFile())
}

// LoadCorpus reads every *.yml file in the data directory and collects known
// tags and event ids. Files that cannot be read or are not valid YAML are
// skipped with a warning. Within a readable file, records with unexpected
// field types still contribute every tag and id that can be read.
func (s *Store) LoadCorpus(ctx context.Context) (*eventscout.Corpus, error) {
	info, err := os.Stat(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, eventscout.Errorf(eventscout.ENOTFOUND, "data directory does not exist: %s", s.dir)
	} else if err != nil {
		return nil, err
	} else if !info.IsDir() {
		return nil, eventscout.Errorf(eventscout.EINVALID, "data path is not a directory: %s", s.dir)
	}

	paths, err := filepath.Glob(filepath.Join(s.dir, "*.yml"))
	if err != nil {
		return nil, err
	}

	var records []*eventscout.Record
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs, problems, err := readIndex(path)
		if err != nil {
			s.logger.Warn("skipping unreadable store file", "path", path, "err", err)
			continue
		}
		for _, p := range problems {
			s.logger.Warn("malformed record in store file", "path", path, "problem", p)
		}
		records = append(records, recs...)
	}

	return eventscout.NewCorpus(records), nil
}

// ReadRecords decodes the records held in a store file. An empty file holds
// no records.
func ReadRecords(path string) ([]*eventscout.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []*eventscout.Record
	if err := yamlv3.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// readIndex decodes only the tags and event ids of the records in a store
// file. Values of the wrong type are reported as problems and skipped while
// the rest of the file is still used.
func readIndex(path string) ([]*eventscout.Record, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var items []any
	if err := yamlv3.Unmarshal(data, &items); err != nil {
		return nil, nil, err
	}

	var records []*eventscout.Record
	var problems []string
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			problems = append(problems, fmt.Sprintf("record %d: not a mapping", i))
			continue
		}
		rec := &eventscout.Record{}

		if raw, ok := m["tags"]; ok && raw != nil {
			tags, ok := raw.([]any)
			if !ok {
				problems = append(problems, fmt.Sprintf("record %d: tags is not a list", i))
			}
			for _, tag := range tags {
				if t, ok := scalarText(tag); ok {
					rec.Tags = append(rec.Tags, t)
				}
			}
		}

		if raw, ok := m["events"]; ok && raw != nil {
			events, ok := raw.([]any)
			if !ok {
				problems = append(problems, fmt.Sprintf("record %d: events is not a list", i))
			}
			for j, raw := range events {
				event, ok := raw.(map[string]any)
				if !ok {
					problems = append(problems, fmt.Sprintf("record %d: event %d is not a mapping", i, j))
					continue
				}
				id, ok := scalarText(event["id"])
				if !ok {
					problems = append(problems, fmt.Sprintf("record %d: event %d has no id", i, j))
					continue
				}
				rec.Events = append(rec.Events, eventscout.Event{ID: id})
			}
		}

		records = append(records, rec)
	}
	return records, problems, nil
}

// scalarText returns the text of a YAML scalar. Mappings, sequences and
// null have no text.
func scalarText(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, v != ""
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}

// AppendRecord appends rec to its category file, creating the file if needed.
// The block is written with a single append so concurrent writers never
// interleave within a record.
func (s *Store) AppendRecord(ctx context.Context, rec *eventscout.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !rec.Category.IsValid() {
		return "", eventscout.Errorf(eventscout.EINVALID, "invalid category %q", rec.Category)
	}

	path := s.PathFor(rec.Category)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return "", err
	}

	if _, err := f.WriteString("\n" + FormatRecord(rec) + "\n"); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
