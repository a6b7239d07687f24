package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/berita"
)

// Ensure LoggingURLSource implements berita.URLSource.
var _ berita.URLSource = (*LoggingURLSource)(nil)

// LoggingURLSource wraps a URLSource with logging.
type LoggingURLSource struct {
	next   berita.URLSource
	logger *slog.Logger
}

// NewLoggingURLSource creates a new LoggingURLSource.
func NewLoggingURLSource(next berita.URLSource, logger *slog.Logger) *LoggingURLSource {
	return &LoggingURLSource{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped source and logs the operation.
func (s *LoggingURLSource) DiscoverURLs(ctx context.Context, location string, filter *berita.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("url discovery",
			"location", location,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, location, filter)
}
