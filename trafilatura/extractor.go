// Package trafilatura extracts the main content of event pages with
// go-trafilatura, dropping navigation, footers and other boilerplate.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/eventscout"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements eventscout.ContentExtractor at compile time.
var _ eventscout.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Fallback extractors are enabled and
// tables are kept, since schedules are often laid out as tables.
func NewExtractor() *Extractor {
	return &Extractor{opts: trafilatura.Options{
		EnableFallback: true,
		ExcludeTables:  false,
		IncludeLinks:   true,
	}}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*eventscout.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, eventscout.Errorf(eventscout.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		contentHTML = buf.String()
	}

	return &eventscout.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}
