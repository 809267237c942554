// Package readability extracts the main content of event pages with
// go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/eventscout"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements eventscout.ContentExtractor at compile time.
var _ eventscout.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*eventscout.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, eventscout.Errorf(eventscout.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &eventscout.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
