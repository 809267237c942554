package mock

import (
	"context"

	"github.com/fwojciec/eventscout"
)

var _ eventscout.FileExtractor = (*FileExtractor)(nil)

// FileExtractor is a mock implementation of eventscout.FileExtractor.
type FileExtractor struct {
	ExtractFileFn func(ctx context.Context, filename string, content []byte) (string, error)
}

func (f *FileExtractor) ExtractFile(ctx context.Context, filename string, content []byte) (string, error) {
	return f.ExtractFileFn(ctx, filename, content)
}
