package trafilatura

import (
	"net/url"
	"strings"

	"github.com/fwojciec/berita"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements berita.Extractor at compile time.
var _ berita.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura as the fast, library-driven method.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main text with whatever
// metadata trafilatura recovered.
func (e *Extractor) Extract(rawHTML, pageURL string, mode berita.Mode) (*berita.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, berita.Errorf(berita.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	out := &berita.ExtractResult{
		Content: berita.NormalizeContent(result.ContentText),
	}
	if mode == berita.ModeContentOnly {
		return out, nil
	}
	out.Title = strings.TrimSpace(result.Metadata.Title)
	out.Author = strings.TrimSpace(result.Metadata.Author)
	if !result.Metadata.Date.IsZero() {
		out.PublishDate = result.Metadata.Date.Format("2006-01-02T15:04:05Z07:00")
	}
	return out, nil
}
