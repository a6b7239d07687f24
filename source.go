package berita

import (
	"context"
	"regexp"
)

// SelectorSource loads an external selector table.
type SelectorSource interface {
	// LoadSelectors reads the table. Malformed rows are skipped; a missing
	// source yields an empty table and no error.
	LoadSelectors(ctx context.Context) (SelectorTable, error)
}

// URLSource discovers article URLs from a publisher index such as a
// sitemap or a feed.
type URLSource interface {
	// DiscoverURLs returns the article URLs listed at location without
	// duplicates. Dated entries come newest first; the rest keep document
	// order. If filter is nil, all URLs are returned.
	DiscoverURLs(ctx context.Context, location string, filter *URLFilter) ([]string, error)
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	Exclude []*regexp.Regexp
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}
	return true
}

// Apply returns the URLs passing the filter, preserving order.
func (f *URLFilter) Apply(urls []string) []string {
	if f == nil {
		return urls
	}
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if f.Match(u) {
			out = append(out, u)
		}
	}
	return out
}
