package mock

import (
	"context"

	"github.com/fwojciec/berita"
)

var _ berita.Completer = (*Completer)(nil)

// Completer is a mock implementation of berita.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string, opts berita.CompletionOptions) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt string, opts berita.CompletionOptions) (string, error) {
	return c.CompleteFn(ctx, prompt, opts)
}
