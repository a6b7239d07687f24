package scrape

import (
	"context"
	"sync/atomic"

	"github.com/fwojciec/berita"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome for one input URL. Index is the URL's position in
// the input slice.
type Result struct {
	Index   int
	URL     string
	Article *berita.Article
	Err     error
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Method    berita.Method
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress. It is called
// from a single goroutine.
type ProgressFunc func(event ProgressEvent)

// ScrapeAll scrapes urls with bounded concurrency and returns one Result
// per input, in input order. A failed URL never stops the others; only
// cancellation of ctx cuts the batch short, leaving the remaining results
// with ctx's error.
func (s *Scraper) ScrapeAll(ctx context.Context, urls []string, opts berita.ScrapeOptions, progress ProgressFunc) []Result {
	total := len(urls)
	results := make([]Result, total)
	if total == 0 {
		return results
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan Result, total)

	var g errgroup.Group
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			g.Go(func() error {
				resultCh <- s.scrapeOne(ctx, i, url, opts)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	for r := range resultCh {
		results[r.Index] = r
		n := int(completed.Add(1))
		if progress == nil {
			continue
		}
		if r.Err != nil {
			progress(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, URL: r.URL, Error: r.Err})
		} else {
			progress(ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, URL: r.URL, Method: r.Article.Method})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return results
}

func (s *Scraper) scrapeOne(ctx context.Context, i int, url string, opts berita.ScrapeOptions) Result {
	r := Result{Index: i, URL: url}
	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, berita.NormalizeDomain(url)); err != nil {
			r.Err = err
			return r
		}
	}
	r.Article, r.Err = s.Scrape(ctx, url, opts)
	return r
}
