package berita

import "context"

// Fetcher retrieves the HTML of a page.
// Implementations range from a single plain GET to a full browser render.
type Fetcher interface {
	// Fetch returns the page HTML. The context controls timeout and
	// cancellation; exceeding it is a fetch failure.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any held resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
