// Package goquery implements HTML normalization on top of goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/eventscout"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Normalizer implements eventscout.Normalizer at compile time.
var _ eventscout.Normalizer = (*Normalizer)(nil)

// Normalizer converts page HTML into whitespace-collapsed plain text.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize returns NormalizeHTML(html). It never fails.
func (n *Normalizer) Normalize(html string) (string, error) {
	return NormalizeHTML(html), nil
}

// NormalizeHTML drops script and style elements with their contents, turns
// every other tag into a word boundary, collapses whitespace runs to a single
// space and trims the result. Malformed markup is recovered by the HTML5
// parser; character references are decoded.
func NormalizeHTML(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return CollapseWhitespace(raw)
	}

	doc.Find("script, style").Remove()

	var parts []string
	for _, n := range doc.Nodes {
		parts = collectText(n, parts)
	}
	return CollapseWhitespace(strings.Join(parts, " "))
}

// collectText appends the text nodes below n in document order.
func collectText(n *html.Node, parts []string) []string {
	if n.Type == html.TextNode {
		// The parser keeps noscript content as raw markup.
		if n.Parent != nil && n.Parent.DataAtom == atom.Noscript {
			return append(parts, NormalizeHTML(n.Data))
		}
		return append(parts, n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		parts = collectText(c, parts)
	}
	return parts
}

// CollapseWhitespace replaces every whitespace run with one space and trims
// the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
