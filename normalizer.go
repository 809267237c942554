package eventscout

// Normalizer turns raw page HTML into plain text suitable for prompting.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// NormalizeMode selects how fetched pages are normalized before prompting.
type NormalizeMode string

// NormalizeMode constants.
const (
	// NormalizeText strips all markup and collapses whitespace.
	NormalizeText NormalizeMode = "text"

	// NormalizeArticle keeps only the main content (trafilatura) as text.
	NormalizeArticle NormalizeMode = "article"

	// NormalizeReadability keeps only the main content (readability) as text.
	NormalizeReadability NormalizeMode = "readability"

	// NormalizeMarkdown keeps only the main content, converted to Markdown.
	NormalizeMarkdown NormalizeMode = "markdown"
)
