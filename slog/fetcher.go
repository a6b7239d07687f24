package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/berita"
)

// Ensure LoggingFetcher implements berita.Fetcher.
var _ berita.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging. The name identifies the
// fetcher in the output, since one run uses several.
type LoggingFetcher struct {
	next   berita.Fetcher
	name   string
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next berita.Fetcher, name string, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, name: name, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"fetcher", f.name,
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
