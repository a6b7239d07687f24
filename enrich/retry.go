package enrich

import (
	"context"
	"time"

	"github.com/fwojciec/berita"
)

var _ berita.Completer = (*RetryCompleter)(nil)

// DefaultRetryDelays returns the backoff delays for completion retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryCompleter retries a Completer after transient failures, waiting
// Delays[i] before retry i+1. Invalid requests are not retried.
type RetryCompleter struct {
	Next   berita.Completer
	Delays []time.Duration
}

// NewRetryCompleter wraps next with the default delays.
func NewRetryCompleter(next berita.Completer) *RetryCompleter {
	return &RetryCompleter{Next: next, Delays: DefaultRetryDelays()}
}

// Complete implements berita.Completer.
func (c *RetryCompleter) Complete(ctx context.Context, prompt string, opts berita.CompletionOptions) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(c.Delays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.Delays[attempt-1]):
			}
		}

		text, err := c.Next.Complete(ctx, prompt, opts)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if berita.ErrorCode(err) == berita.EINVALID || ctx.Err() != nil {
			break
		}
	}
	return "", lastErr
}
