package rod

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/fwojciec/berita"
	beritahttp "github.com/fwojciec/berita/http"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements berita.Fetcher at compile time.
var _ berita.Fetcher = (*Fetcher)(nil)

const (
	// DefaultFetchTimeout bounds a single render.
	DefaultFetchTimeout = 45 * time.Second

	// DefaultSettleDelay is how long a page may keep running scripts after
	// the network goes idle, for lazily injected article bodies.
	DefaultSettleDelay = 5 * time.Second

	// DefaultIdleWindow is the quiet period that counts as network idle.
	DefaultIdleWindow = 500 * time.Millisecond

	// MinRenderedSize is the smallest rendered document accepted.
	MinRenderedSize = 500
)

// Fetcher renders pages in headless Chrome. Every fetch runs in its own
// incognito context so cookies and storage never leak between articles.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	pool    *Pool
	timeout time.Duration
	settle  time.Duration
	idle    time.Duration
	closed  atomic.Bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*fetcherConfig)

type fetcherConfig struct {
	timeout    time.Duration
	settle     time.Duration
	idle       time.Duration
	maxRenders int
}

// WithFetchTimeout sets the per-render timeout.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(c *fetcherConfig) { c.timeout = d }
}

// WithSettleDelay sets the pause between network idle and HTML capture.
func WithSettleDelay(d time.Duration) FetcherOption {
	return func(c *fetcherConfig) { c.settle = d }
}

// WithIdleWindow sets the quiet period that counts as network idle.
func WithIdleWindow(d time.Duration) FetcherOption {
	return func(c *fetcherConfig) { c.idle = d }
}

// WithMaxRenders sets how many renders share one browser before a fresh
// one is launched.
func WithMaxRenders(n int) FetcherOption {
	return func(c *fetcherConfig) { c.maxRenders = n }
}

// NewFetcher launches a headless browser. Close must be called when the
// Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	cfg := fetcherConfig{
		timeout:    DefaultFetchTimeout,
		settle:     DefaultSettleDelay,
		idle:       DefaultIdleWindow,
		maxRenders: DefaultMaxRenders,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	pool := NewPool(cfg.maxRenders)
	if err := pool.Start(); err != nil {
		return nil, err
	}
	return &Fetcher{
		pool:    pool,
		timeout: cfg.timeout,
		settle:  cfg.settle,
		idle:    cfg.idle,
	}, nil
}

// Fetch renders url and returns the resulting DOM serialized as HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", berita.Errorf(berita.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	shared, release, err := f.pool.Acquire()
	if err != nil {
		return "", err
	}
	defer release()

	browser, err := shared.Incognito()
	if err != nil {
		return "", fmt.Errorf("creating incognito context: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	agents := beritahttp.DesktopAgents()
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      agents[rand.IntN(len(agents))],
		AcceptLanguage: "id-ID,id;q=0.9,en;q=0.8",
	}); err != nil {
		return "", err
	}

	waitIdle := page.WaitRequestIdle(f.idle, nil, nil, nil)
	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	waitIdle()

	if f.settle > 0 {
		t := time.NewTimer(f.settle)
		select {
		case <-ctx.Done():
			t.Stop()
			return "", ctx.Err()
		case <-t.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}
	if len(html) <= MinRenderedSize {
		return "", fmt.Errorf("rendered page too small (%d bytes)", len(html))
	}
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.pool.Close()
}
