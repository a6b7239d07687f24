package scrape

import (
	"context"
	"sync"

	"github.com/fwojciec/berita"
	"golang.org/x/time/rate"
)

var _ berita.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter keeps one token bucket per publisher domain, so a batch
// spread across publishers runs in parallel while each publisher sees at
// most rps requests per second.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per
// second per domain with no bursting. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the domain's bucket allows a request or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
