package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/berita"
)

// Ensure LoggingCompleter implements berita.Completer.
var _ berita.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with logging. Prompts and responses
// are logged by size only.
type LoggingCompleter struct {
	next   berita.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next berita.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer and logs the call.
func (c *LoggingCompleter) Complete(ctx context.Context, prompt string, opts berita.CompletionOptions) (text string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("complete",
			"prompt_bytes", len(prompt),
			"response_bytes", len(text),
			"json", opts.JSON,
			"temperature", opts.Temperature,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, prompt, opts)
}
