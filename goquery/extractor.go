package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/berita"
)

// Ensure Extractor implements berita.Extractor.
var _ berita.Extractor = (*Extractor)(nil)

// Extractor pulls article fields out of raw HTML using the publisher
// selector table and generic fallbacks. It serves both the manual and the
// browser acquisition methods.
type Extractor struct {
	selectors berita.SelectorTable
}

// NewExtractor creates an Extractor consulting the given selector table.
func NewExtractor(selectors berita.SelectorTable) *Extractor {
	return &Extractor{selectors: selectors}
}

// Extract reads the publication date before cleaning, while structured-data
// scripts are still in the document, and every other field after.
func (e *Extractor) Extract(html, pageURL string, mode berita.Mode) (*berita.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, berita.Errorf(berita.EINVALID, "failed to parse HTML: %v", err)
	}
	site, _ := e.selectors.LookupURL(pageURL)

	var result berita.ExtractResult
	if mode == berita.ModeFull {
		result.PublishDate = PublishDate(doc, site.PublishDate)
	}

	Clean(doc)
	result.Content = Content(doc, site.Content)
	if mode == berita.ModeFull {
		result.Title = Title(doc, site.Title)
		result.Author = Author(doc, site.Author)
	}
	return &result, nil
}
