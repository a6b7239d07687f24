package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/berita"
)

// Ensure IndexSource implements berita.URLSource.
var _ berita.URLSource = (*IndexSource)(nil)

// IndexSource discovers article URLs from a section or index page, such as
// a publisher's "terpopuler" or category listing.
type IndexSource struct {
	Fetcher berita.Fetcher
}

// DiscoverURLs fetches location and returns its same-host links in
// document order.
func (s *IndexSource) DiscoverURLs(ctx context.Context, location string, filter *berita.URLFilter) ([]string, error) {
	html, err := s.Fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	links, err := ExtractLinks(html, location)
	if err != nil {
		return nil, err
	}
	return filter.Apply(links), nil
}

// ExtractLinks returns the deduplicated same-host links found in html,
// resolved against baseURL with fragments stripped. Links back to the
// page itself and non-HTTP schemes are skipped.
func ExtractLinks(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, berita.Errorf(berita.EINVALID, "invalid base URL %q", baseURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, berita.Errorf(berita.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] || !isSameHost(base, resolved) {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})
	return links, nil
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved URL
// is self-referential (same as base URL after stripping fragment).
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost compares hosts after dropping a leading "www.", since
// publishers mix both forms in their own navigation.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return strings.TrimPrefix(u.Host, "www.") == strings.TrimPrefix(base.Host, "www.")
}

func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
