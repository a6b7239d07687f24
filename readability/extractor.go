package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/berita"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements berita.Extractor at compile time.
var _ berita.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability as an alternative fast method.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main text. Readability does
// not report a publication date.
func (e *Extractor) Extract(rawHTML, pageURL string, mode berita.Mode) (*berita.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, berita.Errorf(berita.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, err
	}

	out := &berita.ExtractResult{
		Content: berita.NormalizeContent(article.TextContent),
	}
	if mode == berita.ModeFull {
		out.Title = strings.TrimSpace(article.Title)
		out.Author = strings.TrimSpace(article.Byline)
	}
	return out, nil
}
