package mock

import "github.com/fwojciec/berita"

var _ berita.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of berita.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string, mode berita.Mode) (*berita.ExtractResult, error)
}

func (e *Extractor) Extract(html, pageURL string, mode berita.Mode) (*berita.ExtractResult, error) {
	return e.ExtractFn(html, pageURL, mode)
}
