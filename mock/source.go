package mock

import (
	"context"

	"github.com/fwojciec/berita"
)

var _ berita.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of berita.URLSource.
type URLSource struct {
	DiscoverURLsFn func(ctx context.Context, location string, filter *berita.URLFilter) ([]string, error)
}

func (s *URLSource) DiscoverURLs(ctx context.Context, location string, filter *berita.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, location, filter)
}
