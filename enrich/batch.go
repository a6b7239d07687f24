package enrich

import (
	"context"

	"github.com/fwojciec/berita"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds EnrichAll.
const DefaultConcurrency = 4

// EnrichAll enriches every non-nil article in place with at most
// concurrency model calls in flight. Each article's Enrichment is replaced.
func (e *Enricher) EnrichAll(ctx context.Context, articles []*berita.Article, opts Options, concurrency int) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var g errgroup.Group
	g.SetLimit(concurrency)
	for _, a := range articles {
		if a == nil {
			continue
		}
		g.Go(func() error {
			a.Enrichment = e.Enrich(ctx, a, opts)
			return nil
		})
	}
	_ = g.Wait()
}
