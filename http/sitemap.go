package http

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/berita"
)

// Ensure SitemapSource implements berita.URLSource.
var _ berita.URLSource = (*SitemapSource)(nil)

// fallbackSitemaps are probed in order when robots.txt lists none.
var fallbackSitemaps = []string{"/sitemap_news.xml", "/news-sitemap.xml", "/sitemap.xml"}

// SitemapSource discovers article URLs from publisher sitemaps, including
// Google News sitemaps.
type SitemapSource struct {
	client *http.Client
}

// NewSitemapSource creates a new SitemapSource with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapSource(client *http.Client) *SitemapSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapSource{client: client}
}

// sitemapEntry is one <url> element.
type sitemapEntry struct {
	loc       string
	published time.Time
}

// DiscoverURLs returns the article URLs for location. A location ending in
// .xml or .xml.gz is read directly; any other URL is treated as a site root
// whose sitemaps are found via robots.txt or well-known paths.
//
// Entries carrying a news:publication_date are returned newest first ahead
// of undated entries, which keep document order.
func (s *SitemapSource) DiscoverURLs(ctx context.Context, location string, filter *berita.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(location)
	if err != nil || base.Host == "" {
		return nil, berita.Errorf(berita.EINVALID, "invalid sitemap location %q", location)
	}

	var sitemapURLs []string
	if isSitemapPath(base.Path) {
		sitemapURLs = []string{base.String()}
	} else {
		root := *base
		root.Path, root.RawQuery = "", ""
		sitemapURLs, err = s.findSitemapURLs(ctx, &root)
		if err != nil {
			return nil, err
		}
	}

	var entries []sitemapEntry
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	for _, sitemapURL := range sitemapURLs {
		found, err := s.processSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, e := range found {
			if !seenURLs[e.loc] {
				seenURLs[e.loc] = true
				entries = append(entries, e)
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].published.After(entries[j].published)
	})

	urls := make([]string, 0, len(entries))
	for _, e := range entries {
		if filter.Match(e.loc) {
			urls = append(urls, e.loc)
		}
	}
	return urls, nil
}

func isSitemapPath(p string) bool {
	p = strings.ToLower(p)
	return strings.HasSuffix(p, ".xml") || strings.HasSuffix(p, ".xml.gz")
}

// findSitemapURLs discovers sitemap URLs from robots.txt or well-known paths.
func (s *SitemapSource) findSitemapURLs(ctx context.Context, base *url.URL) ([]string, error) {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	sitemaps, err := s.parseSitemapsFromRobots(ctx, robotsURL.String())
	if err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	for _, p := range fallbackSitemaps {
		candidate := base.ResolveReference(&url.URL{Path: p}).String()
		exists, err := s.urlExists(ctx, candidate)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if exists {
			return []string{candidate}, nil
		}
	}
	return nil, nil
}

// parseSitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *SitemapSource) parseSitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.fetchURL(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
				sitemaps = append(sitemaps, u)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

// processSitemap fetches and parses a sitemap, handling both urlset and sitemapindex.
func (s *SitemapSource) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]sitemapEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var r io.Reader = body
	if strings.HasSuffix(strings.ToLower(sitemapURL), ".gz") {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("opening gzip sitemap %s: %w", sitemapURL, err)
		}
		defer gz.Close()
		r = gz
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		var all []sitemapEntry
		for _, sm := range root.SelectElements("sitemap") {
			loc := sm.SelectElement("loc")
			if loc == nil || strings.TrimSpace(loc.Text()) == "" {
				continue
			}
			found, err := s.processSitemap(ctx, strings.TrimSpace(loc.Text()), seen)
			if err != nil {
				return nil, err
			}
			all = append(all, found...)
		}
		return all, nil
	}
	return parseURLSet(root), nil
}

// parseURLSet extracts entries from a <urlset> element. etree matches
// child tags by local name, so news:news is found as "news".
func parseURLSet(root *etree.Element) []sitemapEntry {
	var entries []sitemapEntry
	for _, el := range root.SelectElements("url") {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		u := strings.TrimSpace(loc.Text())
		if u == "" {
			continue
		}
		e := sitemapEntry{loc: u}
		if news := el.SelectElement("news"); news != nil {
			if pub := news.SelectElement("publication_date"); pub != nil {
				e.published = parseSitemapDate(pub.Text())
			}
		}
		entries = append(entries, e)
	}
	return entries
}

func parseSitemapDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z0700", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// fetchURL fetches a URL and returns the response body.
func (s *SitemapSource) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", pick(desktopAgents))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}

// urlExists checks if a URL returns 200 OK.
func (s *SitemapSource) urlExists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", pick(desktopAgents))

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
