// Package scrape runs the escalating acquisition cascade for news
// articles: each URL is tried with a list of methods, cheapest first, and
// the first result whose content passes the validity check wins.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/fwojciec/berita"
)

const (
	// DefaultTimeout bounds each method when neither the method nor the
	// call sets a timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultConcurrency bounds ScrapeAll.
	DefaultConcurrency = 5
)

// Method is one acquisition path: a way to obtain HTML and a way to read
// article fields out of it.
type Method struct {
	Name      berita.Method
	Fetcher   berita.Fetcher
	Extractor berita.Extractor

	// Timeout overrides the call's timeout for this method. The request
	// ladder needs room for all of its attempts and delays.
	Timeout time.Duration
}

// Scraper runs Methods in order for each URL.
type Scraper struct {
	Methods     []Method
	RateLimiter berita.DomainLimiter
	Concurrency int

	// StartDelay returns the pause taken before the first method. Nil uses
	// RandomStartDelay.
	StartDelay func() time.Duration

	// Timeout is used when neither the method nor the call sets one.
	Timeout time.Duration

	Logger *slog.Logger
}

// RandomStartDelay returns a uniform delay in [500ms, 1.5s).
func RandomStartDelay() time.Duration {
	return 500*time.Millisecond + rand.N(time.Second)
}

// Scrape returns the first article whose content passes
// berita.IsValidContent. Method errors, panics and timeouts only advance
// the cascade; an ENOTFOUND error is returned once every method has
// failed, and ctx errors are returned as is.
func (s *Scraper) Scrape(ctx context.Context, url string, opts berita.ScrapeOptions) (*berita.Article, error) {
	if err := s.sleep(ctx, s.startDelay()); err != nil {
		return nil, err
	}

	for _, m := range s.Methods {
		result, err := s.try(ctx, m, url, opts)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			s.logger().Debug("method failed", "url", url, "method", m.Name, "outcome", "error", "err", err)
			continue
		}
		if !berita.IsValidContent(result.Content) {
			s.logger().Debug("method failed", "url", url, "method", m.Name, "outcome", "invalid")
			continue
		}

		s.logger().Debug("method succeeded", "url", url, "method", m.Name, "outcome", "valid")

		a := &berita.Article{
			URL:       url,
			Content:   result.Content,
			Method:    m.Name,
			ScrapedAt: time.Now().UTC(),
		}
		if opts.Mode == berita.ModeFull {
			a.Title = result.Title
			if a.Title == "" {
				a.Title = berita.TitleNotFound
			}
			a.Author = result.Author
			a.PublishDate = result.PublishDate
		}
		return a, nil
	}

	return nil, berita.Errorf(berita.ENOTFOUND, "no method produced valid content for %s", url)
}

// try runs one method under its own deadline. A panic in the fetcher or
// extractor is reported as that method's error.
func (s *Scraper) try(ctx context.Context, m Method, url string, opts berita.ScrapeOptions) (result *berita.ExtractResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("panic in %s method: %v", m.Name, r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeoutFor(m, opts))
	defer cancel()

	html, err := m.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	result, err = m.Extractor.Extract(html, url, opts.Mode)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("%s extractor returned no result", m.Name)
	}
	return result, nil
}

func (s *Scraper) timeoutFor(m Method, opts berita.ScrapeOptions) time.Duration {
	switch {
	case m.Timeout > 0:
		return m.Timeout
	case opts.Timeout > 0:
		return opts.Timeout
	case s.Timeout > 0:
		return s.Timeout
	}
	return DefaultTimeout
}

func (s *Scraper) startDelay() time.Duration {
	if s.StartDelay == nil {
		return RandomStartDelay()
	}
	return s.StartDelay()
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func (s *Scraper) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
