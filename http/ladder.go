package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/fwojciec/berita"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultAttemptTimeout bounds a single strategy attempt.
	DefaultAttemptTimeout = 30 * time.Second
	// DefaultMinBodySize is the body size a response must exceed to count.
	DefaultMinBodySize = 1000
)

// Ensure Ladder implements berita.Fetcher at compile time.
var _ berita.Fetcher = (*Ladder)(nil)

// Identity is the header set and timeout used for one request attempt.
// A fresh Identity is built for every attempt and never shared.
type Identity struct {
	Strategy string
	Header   http.Header
	Timeout  time.Duration
}

// Strategy builds the Identity for one rung of the ladder.
type Strategy struct {
	Name  string
	Build func(timeout time.Duration) Identity
}

// BrowserStrategy impersonates a desktop browser with an Indonesian locale.
func BrowserStrategy() Strategy {
	return Strategy{Name: "browser", Build: func(timeout time.Duration) Identity {
		h := http.Header{}
		h.Set("User-Agent", pick(desktopAgents))
		h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
		h.Set("Accept-Language", "id-ID,id;q=0.9,en-US;q=0.8,en;q=0.7")
		h.Set("Upgrade-Insecure-Requests", "1")
		h.Set("Sec-Fetch-Dest", "document")
		h.Set("Sec-Fetch-Mode", "navigate")
		h.Set("Sec-Fetch-Site", "none")
		return Identity{Strategy: "browser", Header: h, Timeout: timeout}
	}}
}

// MobileStrategy impersonates a phone or tablet browser.
func MobileStrategy() Strategy {
	return Strategy{Name: "mobile", Build: func(timeout time.Duration) Identity {
		h := http.Header{}
		h.Set("User-Agent", pick(mobileAgents))
		h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		h.Set("Accept-Language", "id-ID,id;q=0.9,en;q=0.8")
		return Identity{Strategy: "mobile", Header: h, Timeout: timeout}
	}}
}

// BotStrategy identifies as a search engine or social crawler.
func BotStrategy() Strategy {
	return Strategy{Name: "bot", Build: func(timeout time.Duration) Identity {
		h := http.Header{}
		h.Set("User-Agent", pick(botAgents))
		h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		h.Set("Accept-Language", "id-ID,id;q=0.9,en;q=0.8")
		return Identity{Strategy: "bot", Header: h, Timeout: timeout}
	}}
}

// MinimalStrategy sends bare headers with half the timeout.
func MinimalStrategy() Strategy {
	return Strategy{Name: "minimal", Build: func(timeout time.Duration) Identity {
		h := http.Header{}
		h.Set("User-Agent", minimalAgent)
		h.Set("Accept", "text/html,*/*")
		h.Set("Accept-Language", "id,en")
		return Identity{Strategy: "minimal", Header: h, Timeout: timeout / 2}
	}}
}

// DefaultStrategies returns browser, mobile, bot and minimal, in that order.
func DefaultStrategies() []Strategy {
	return []Strategy{BrowserStrategy(), MobileStrategy(), BotStrategy(), MinimalStrategy()}
}

func pick(pool []string) string {
	return pool[rand.IntN(len(pool))]
}

// RandomDelay returns a function yielding durations uniformly distributed
// in [lo, hi).
func RandomDelay(lo, hi time.Duration) func() time.Duration {
	return func() time.Duration {
		if hi <= lo {
			return lo
		}
		return lo + rand.N(hi-lo)
	}
}

// Attempt records the outcome of one strategy.
type Attempt struct {
	Strategy string
	Status   int
	Bytes    int
	Duration time.Duration
	Err      error
}

// OK reports whether the attempt produced a usable body.
func (a Attempt) OK() bool { return a.Err == nil }

// Ladder fetches a page by trying request identities in order until one
// returns status 200 with a body larger than the minimum size.
// Ladder is safe for concurrent use.
type Ladder struct {
	client     *http.Client
	strategies []Strategy
	timeout    time.Duration
	minBody    int
	delay      func() time.Duration
}

// LadderOption configures a Ladder.
type LadderOption func(*Ladder)

// WithAttemptTimeout sets the per-attempt timeout. The minimal strategy
// uses half of it. Defaults to DefaultAttemptTimeout.
func WithAttemptTimeout(d time.Duration) LadderOption {
	return func(l *Ladder) { l.timeout = d }
}

// WithAttemptDelay sets the pause taken before every attempt after the
// first. Defaults to a random 1-3s.
func WithAttemptDelay(delay func() time.Duration) LadderOption {
	return func(l *Ladder) { l.delay = delay }
}

// WithMinBodySize sets the body size a response must exceed.
func WithMinBodySize(n int) LadderOption {
	return func(l *Ladder) { l.minBody = n }
}

// WithStrategies replaces the default strategy order.
func WithStrategies(s ...Strategy) LadderOption {
	return func(l *Ladder) { l.strategies = s }
}

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(c *http.Client) LadderOption {
	return func(l *Ladder) { l.client = c }
}

// NewLadder creates a Ladder with the default strategies.
func NewLadder(opts ...LadderOption) *Ladder {
	l := &Ladder{
		client:     &http.Client{},
		strategies: DefaultStrategies(),
		timeout:    DefaultAttemptTimeout,
		minBody:    DefaultMinBodySize,
		delay:      RandomDelay(time.Second, 3*time.Second),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Budget returns the longest time a full pass over the ladder can take.
func (l *Ladder) Budget() time.Duration {
	var total time.Duration
	for i, s := range l.strategies {
		total += s.Build(l.timeout).Timeout
		if i > 0 {
			total += 3 * time.Second
		}
	}
	return total
}

// Fetch returns the HTML of the first strategy that succeeds.
func (l *Ladder) Fetch(ctx context.Context, url string) (string, error) {
	html, attempts, err := l.run(ctx, url)
	if err != nil {
		return "", err
	}
	if html == "" {
		errs := make([]error, 0, len(attempts))
		for _, a := range attempts {
			errs = append(errs, fmt.Errorf("%s: %w", a.Strategy, a.Err))
		}
		return "", fmt.Errorf("all %d request strategies failed for %s: %w", len(attempts), url, errors.Join(errs...))
	}
	return html, nil
}

// Probe runs the ladder like Fetch and reports every attempt made.
func (l *Ladder) Probe(ctx context.Context, url string) ([]Attempt, error) {
	_, attempts, err := l.run(ctx, url)
	return attempts, err
}

// Close is a no-op; the ladder holds no resources beyond its client.
func (l *Ladder) Close() error {
	return nil
}

// run walks the strategies. A non-nil error means ctx ended.
func (l *Ladder) run(ctx context.Context, url string) (string, []Attempt, error) {
	var attempts []Attempt
	for i, s := range l.strategies {
		if i > 0 {
			if err := sleep(ctx, l.delay()); err != nil {
				return "", attempts, err
			}
		}
		html, a := l.attempt(ctx, url, s.Build(l.timeout))
		attempts = append(attempts, a)
		if a.OK() {
			return html, attempts, nil
		}
		if err := ctx.Err(); err != nil {
			return "", attempts, err
		}
	}
	return "", attempts, nil
}

func (l *Ladder) attempt(ctx context.Context, url string, id Identity) (html string, a Attempt) {
	a.Strategy = id.Strategy
	defer func(begin time.Time) { a.Duration = time.Since(begin) }(time.Now())

	if id.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, id.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		a.Err = err
		return "", a
	}
	req.Header = id.Header

	resp, err := l.client.Do(req)
	if err != nil {
		a.Err = err
		return "", a
	}
	defer resp.Body.Close()
	a.Status = resp.StatusCode

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		a.Err = fmt.Errorf("unresolved redirect (HTTP %d)", resp.StatusCode)
		return "", a
	}
	if resp.StatusCode != http.StatusOK {
		a.Err = fmt.Errorf("HTTP %d", resp.StatusCode)
		return "", a
	}

	body, err := readBody(resp)
	if err != nil {
		a.Err = err
		return "", a
	}
	a.Bytes = len(body)
	if len(body) <= l.minBody {
		a.Err = fmt.Errorf("body too small (%d bytes)", len(body))
		return "", a
	}
	return body, a
}

func sleep(ctx context.Context, d time.Duration) error {
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

// readBody reads the response body, converting it to UTF-8 according to
// the declared or sniffed charset.
func readBody(resp *http.Response) (string, error) {
	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		r = resp.Body
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
