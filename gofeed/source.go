// Package gofeed discovers article URLs from RSS and Atom feeds.
package gofeed

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/fwojciec/berita"
	beritahttp "github.com/fwojciec/berita/http"
	"github.com/mmcdole/gofeed"
)

var _ berita.URLSource = (*FeedSource)(nil)

// FeedSource reads article links from a publisher feed.
type FeedSource struct {
	client *http.Client
}

// NewFeedSource returns a FeedSource using client. A nil client uses
// http.DefaultClient.
func NewFeedSource(client *http.Client) *FeedSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &FeedSource{client: client}
}

type entry struct {
	url  string
	date time.Time
}

// DiscoverURLs fetches the feed at location and returns its item links.
// Relative links are resolved against the feed URL.
func (s *FeedSource) DiscoverURLs(ctx context.Context, location string, filter *berita.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base, err := url.Parse(location)
	if err != nil || base.Host == "" {
		return nil, berita.Errorf(berita.EINVALID, "invalid feed URL %q", location)
	}

	agents := beritahttp.DesktopAgents()
	parser := gofeed.NewParser()
	parser.Client = s.client
	parser.UserAgent = agents[rand.IntN(len(agents))]

	feed, err := parser.ParseURLWithContext(location, ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, berita.Errorf(berita.EUNAVAILABLE, "HTTP %d for %s", httpErr.StatusCode, location)
		}
		return nil, berita.Errorf(berita.EINVALID, "parse feed %s: %v", location, err)
	}

	seen := make(map[string]bool, len(feed.Items))
	var entries []entry
	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}
		ref, err := url.Parse(link)
		if err != nil {
			continue
		}
		abs := base.ResolveReference(ref).String()
		if seen[abs] {
			continue
		}
		seen[abs] = true

		e := entry{url: abs}
		if item.PublishedParsed != nil {
			e.date = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			e.date = *item.UpdatedParsed
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].date, entries[j].date
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.After(b)
	})

	urls := make([]string, 0, len(entries))
	for _, e := range entries {
		if filter.Match(e.url) {
			urls = append(urls, e.url)
		}
	}
	return urls, nil
}
