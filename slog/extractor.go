package slog

import (
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/berita"
)

// Ensure LoggingExtractor implements berita.Extractor.
var _ berita.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   berita.Extractor
	name   string
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next berita.Extractor, name string, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, name: name, logger: logger}
}

// Extract delegates to the wrapped extractor and logs what it found.
func (e *LoggingExtractor) Extract(html, pageURL string, mode berita.Mode) (result *berita.ExtractResult, err error) {
	defer func(begin time.Time) {
		var chars int
		var hasTitle, hasAuthor, hasDate bool
		if result != nil {
			chars = utf8.RuneCountInString(result.Content)
			hasTitle = result.Title != ""
			hasAuthor = result.Author != ""
			hasDate = result.PublishDate != ""
		}
		e.logger.Info("extract",
			"extractor", e.name,
			"url", pageURL,
			"mode", mode.String(),
			"chars", chars,
			"title", hasTitle,
			"author", hasAuthor,
			"date", hasDate,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, pageURL, mode)
}
