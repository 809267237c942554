package extract

import (
	"strings"

	"github.com/fwojciec/eventscout"
)

var (
	_ eventscout.Normalizer = (*ArticleNormalizer)(nil)
	_ eventscout.Normalizer = (*MarkdownNormalizer)(nil)
)

// ArticleNormalizer reduces a page to its main content before text
// normalization. When extraction fails or finds nothing the whole page is
// normalized instead, so a page is never dropped for lack of an article.
type ArticleNormalizer struct {
	Extractor eventscout.ContentExtractor
	Text      eventscout.Normalizer
}

// Normalize implements eventscout.Normalizer.
func (n *ArticleNormalizer) Normalize(html string) (string, error) {
	if main, ok := mainContent(n.Extractor, html); ok {
		return n.Text.Normalize(main)
	}
	return n.Text.Normalize(html)
}

// MarkdownNormalizer converts the main content of a page to Markdown so that
// headings and schedule tables survive. Falls back to Text on the whole page
// when extraction or conversion yields nothing.
type MarkdownNormalizer struct {
	Extractor eventscout.ContentExtractor
	Converter eventscout.Converter
	Text      eventscout.Normalizer
}

// Normalize implements eventscout.Normalizer.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	if main, ok := mainContent(n.Extractor, html); ok {
		md, err := n.Converter.Convert(main)
		if err == nil && strings.TrimSpace(md) != "" {
			return strings.TrimSpace(md), nil
		}
	}
	return n.Text.Normalize(html)
}

func mainContent(x eventscout.ContentExtractor, html string) (string, bool) {
	result, err := x.Extract(html)
	if err != nil || result == nil || strings.TrimSpace(result.ContentHTML) == "" {
		return "", false
	}
	return result.ContentHTML, true
}
