package berita

import (
	"net/url"
	"time"
)

// Method names the acquisition path that produced an article.
type Method string

// Acquisition methods, in the order the orchestrator tries them.
const (
	MethodFast    Method = "fast"
	MethodManual  Method = "manual"
	MethodBrowser Method = "browser"
)

// Mode selects how much of an article is extracted.
type Mode int

const (
	// ModeFull extracts title, content, author and publication date.
	ModeFull Mode = iota
	// ModeContentOnly extracts only the body text.
	ModeContentOnly
)

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	if m == ModeContentOnly {
		return "content-only"
	}
	return "full"
}

// TitleNotFound is returned in place of a title when no candidate survives
// the length bounds.
const TitleNotFound = "No title found"

// Article is the structured result of extracting one news URL.
//
// Empty Author and PublishDate mean the field was absent on the page.
// In content-only mode Title is empty as well.
type Article struct {
	ID          string      `json:"-"`
	URL         string      `json:"url"`
	Title       string      `json:"title,omitempty"`
	Content     string      `json:"content"`
	Author      string      `json:"author,omitempty"`
	PublishDate string      `json:"publish_date,omitempty"`
	Method      Method      `json:"method"`
	ContentHash string      `json:"-"`
	ScrapedAt   time.Time   `json:"scraped_at"`
	Enrichment  *Enrichment `json:"enrichment,omitempty"`
}

// Validate returns an error if the article cannot be stored.
func (a *Article) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	if _, err := url.ParseRequestURI(a.URL); err != nil {
		return Errorf(EINVALID, "article URL %q is not absolute", a.URL)
	}
	if !IsValidContent(a.Content) {
		return Errorf(EINVALID, "article content for %q is not valid", a.URL)
	}
	switch a.Method {
	case MethodFast, MethodManual, MethodBrowser:
	default:
		return Errorf(EINVALID, "unknown extraction method %q", a.Method)
	}
	return nil
}

// ExtractResult holds the fields an Extractor recovered from one page.
// Fields the extractor could not find are empty.
type ExtractResult struct {
	Title       string
	Content     string
	Author      string
	PublishDate string
}

// ScrapeOptions configures a single scrape.
type ScrapeOptions struct {
	// Timeout bounds each acquisition method. Zero uses the scraper default.
	Timeout time.Duration
	Mode    Mode
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	URL    *string
	Domain *string
	Method *Method

	Limit  int
	Offset int
}
