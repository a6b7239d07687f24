package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/berita/mock"
	beritaslog "github.com/fwojciec/berita/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := beritaslog.NewLoggingFetcher(inner, "ladder", logger)
		html, err := fetcher.Fetch(context.Background(), "https://www.detik.com/berita/1")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "fetcher=ladder")
		assert.Contains(t, output, "url=https://www.detik.com/berita/1")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := beritaslog.NewLoggingFetcher(inner, "browser", logger)
		_, err := fetcher.Fetch(context.Background(), "https://www.detik.com/berita/1")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"network error\"")
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closeCalled := false
	inner := &mock.Fetcher{
		CloseFn: func() error {
			closeCalled = true
			return nil
		},
	}

	fetcher := beritaslog.NewLoggingFetcher(inner, "browser", slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	err := fetcher.Close()

	require.NoError(t, err)
	assert.True(t, closeCalled)
}
