package mock

import "github.com/fwojciec/eventscout"

var _ eventscout.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of eventscout.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*eventscout.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html string) (*eventscout.ExtractResult, error) {
	return e.ExtractFn(html)
}
