package mock

import (
	"context"

	"github.com/fwojciec/eventscout"
)

var _ eventscout.RecordStore = (*RecordStore)(nil)

// RecordStore is a mock implementation of eventscout.RecordStore.
type RecordStore struct {
	LoadCorpusFn   func(ctx context.Context) (*eventscout.Corpus, error)
	AppendRecordFn func(ctx context.Context, rec *eventscout.Record) (string, error)
	PathForFn      func(category eventscout.Category) string
}

func (s *RecordStore) LoadCorpus(ctx context.Context) (*eventscout.Corpus, error) {
	return s.LoadCorpusFn(ctx)
}

func (s *RecordStore) AppendRecord(ctx context.Context, rec *eventscout.Record) (string, error) {
	return s.AppendRecordFn(ctx, rec)
}

func (s *RecordStore) PathFor(category eventscout.Category) string {
	return s.PathForFn(category)
}
