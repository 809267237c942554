package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/eventscout"
)

// Ensure LoggingStore implements eventscout.RecordStore.
var _ eventscout.RecordStore = (*LoggingStore)(nil)

// LoggingStore wraps a RecordStore with logging.
type LoggingStore struct {
	next   eventscout.RecordStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next eventscout.RecordStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// LoadCorpus delegates to the wrapped store and logs the corpus size.
func (s *LoggingStore) LoadCorpus(ctx context.Context) (corpus *eventscout.Corpus, err error) {
	defer func(begin time.Time) {
		var tags, ids int
		if corpus != nil {
			tags, ids = len(corpus.Tags), len(corpus.IDs)
		}
		s.logger.Info("load corpus",
			"tags", tags,
			"ids", ids,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadCorpus(ctx)
}

// AppendRecord delegates to the wrapped store and logs the target file.
func (s *LoggingStore) AppendRecord(ctx context.Context, rec *eventscout.Record) (path string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("append record",
			"category", rec.Category,
			"events", len(rec.Events),
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.AppendRecord(ctx, rec)
}

// PathFor delegates to the wrapped store.
func (s *LoggingStore) PathFor(category eventscout.Category) string {
	return s.next.PathFor(category)
}
