// Package slog provides log/slog decorators for the berita service
// interfaces. Each decorator logs one line per call at info level with the
// call's duration and error.
package slog
