package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/berita"
	main "github.com/fwojciec/berita/cmd/berita"
	"github.com/fwojciec/berita/enrich"
	"github.com/fwojciec/berita/mock"
	"github.com/fwojciec/berita/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const body = "Pemerintah mengumumkan kebijakan baru tentang subsidi energi hari ini. " +
	"Kebijakan tersebut mulai berlaku pada awal bulan depan di seluruh provinsi. " +
	"Para pengamat menilai langkah ini akan menekan inflasi dalam jangka pendek."

// newScraper returns a single-method scraper that extracts a valid article
// for every URL except those containing "gagal".
func newScraper() *scrape.Scraper {
	return &scrape.Scraper{
		Methods: []scrape.Method{{
			Name: berita.MethodFast,
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html>" + url + "</html>", nil
			}},
			Extractor: &mock.Extractor{ExtractFn: func(html, pageURL string, mode berita.Mode) (*berita.ExtractResult, error) {
				if strings.Contains(pageURL, "gagal") {
					return &berita.ExtractResult{Content: "Akses ditolak."}, nil
				}
				return &berita.ExtractResult{Title: "Judul " + pageURL, Content: body}, nil
			}},
		}},
		StartDelay: func() time.Duration { return 0 },
	}
}

func decodeLines(t *testing.T, out string) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		records = append(records, m)
	}
	return records
}

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes one JSONL record per URL in input order", func(t *testing.T) {
		t.Parallel()

		// Given three URLs, the middle one unextractable
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: stderr, Scraper: newScraper()}
		cmd := &main.ScrapeCmd{URLs: []string{
			"https://warta.example/1",
			"https://warta.example/gagal",
			"https://warta.example/3",
		}}

		// When scraping
		err := cmd.Run(deps)

		// Then records follow input order and the failure carries an error
		require.NoError(t, err)
		records := decodeLines(t, stdout.String())
		require.Len(t, records, 3)
		assert.Equal(t, "https://warta.example/1", records[0]["url"])
		assert.Equal(t, "Judul https://warta.example/1", records[0]["title"])
		assert.Equal(t, "fast", records[0]["method"])
		assert.Equal(t, body, records[0]["content"])
		assert.Equal(t, "https://warta.example/gagal", records[1]["url"])
		assert.Contains(t, records[1]["error"], "no method produced valid content")
		assert.NotContains(t, records[1], "content")
		assert.Equal(t, "https://warta.example/3", records[2]["url"])
		assert.Contains(t, stderr.String(), "Extracted 2 of 3 articles")
	})

	t.Run("content-only mode omits the title", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Scraper: newScraper()}
		cmd := &main.ScrapeCmd{URLs: []string{"https://warta.example/1"}, ContentOnly: true}

		require.NoError(t, cmd.Run(deps))

		records := decodeLines(t, stdout.String())
		assert.NotContains(t, records[0], "title")
	})

	t.Run("reads URLs from stdin skipping blanks and comments", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdin:   strings.NewReader("# daftar\nhttps://warta.example/1\n\n  https://warta.example/2  \n"),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Scraper: newScraper(),
		}
		cmd := &main.ScrapeCmd{URLs: []string{"https://warta.example/0"}, Input: "-"}

		require.NoError(t, cmd.Run(deps))

		records := decodeLines(t, stdout.String())
		require.Len(t, records, 3)
		assert.Equal(t, "https://warta.example/0", records[0]["url"])
		assert.Equal(t, "https://warta.example/2", records[2]["url"])
	})

	t.Run("reads URLs from a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "urls.txt")
		require.NoError(t, os.WriteFile(path, []byte("https://warta.example/1\nhttps://warta.example/2\n"), 0o644))
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Scraper: newScraper()}

		require.NoError(t, (&main.ScrapeCmd{Input: path}).Run(deps))

		assert.Len(t, decodeLines(t, stdout.String()), 2)
	})

	t.Run("no URLs", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Scraper: newScraper()}

		err := (&main.ScrapeCmd{}).Run(deps)

		assert.Equal(t, berita.EINVALID, berita.ErrorCode(err))
	})

	t.Run("every URL failing is an error", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Scraper: newScraper()}

		err := (&main.ScrapeCmd{URLs: []string{"https://warta.example/gagal"}}).Run(deps)

		require.Error(t, err)
		assert.Len(t, decodeLines(t, stdout.String()), 1)
	})

	t.Run("stores results and reuses stored articles", func(t *testing.T) {
		t.Parallel()

		// Given a store already holding the first URL
		stored := &berita.Article{URL: "https://warta.example/1", Title: "Tersimpan", Content: body, Method: berita.MethodBrowser}
		var mu sync.Mutex
		var created []string
		articles := &mock.ArticleService{
			FindArticleByURLFn: func(_ context.Context, url string) (*berita.Article, error) {
				if url == stored.URL {
					return stored, nil
				}
				return nil, berita.Errorf(berita.ENOTFOUND, "article not found")
			},
			CreateArticleFn: func(_ context.Context, a *berita.Article) error {
				mu.Lock()
				defer mu.Unlock()
				created = append(created, a.URL)
				return nil
			},
		}
		var scraped []string
		scraper := newScraper()
		inner := scraper.Methods[0].Fetcher
		scraper.Methods[0].Fetcher = &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
			mu.Lock()
			scraped = append(scraped, url)
			mu.Unlock()
			return inner.Fetch(ctx, url)
		}}
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: stderr, Scraper: scraper, Articles: articles}

		// When scraping both URLs with skip-existing
		cmd := &main.ScrapeCmd{URLs: []string{"https://warta.example/1", "https://warta.example/2"}, SkipExisting: true}
		require.NoError(t, cmd.Run(deps))

		// Then only the new URL is fetched and stored, and both are output
		assert.Equal(t, []string{"https://warta.example/2"}, scraped)
		assert.Equal(t, []string{"https://warta.example/2"}, created)
		records := decodeLines(t, stdout.String())
		require.Len(t, records, 2)
		assert.Equal(t, "Tersimpan", records[0]["title"])
		assert.Contains(t, stderr.String(), "Reusing 1 stored articles")
	})

	t.Run("markdown output goes through the writer", func(t *testing.T) {
		t.Parallel()

		var written []string
		writer := &mock.ArticleWriter{WriteArticleFn: func(_ context.Context, a *berita.Article) error {
			written = append(written, a.URL)
			return nil
		}}
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: stderr, Scraper: newScraper(), Writer: writer}
		cmd := &main.ScrapeCmd{URLs: []string{"https://warta.example/1", "https://warta.example/gagal"}, Format: "markdown"}

		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, []string{"https://warta.example/1"}, written)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "failed: https://warta.example/gagal")
	})

	t.Run("enriches extracted articles", func(t *testing.T) {
		t.Parallel()

		completer := &mock.Completer{CompleteFn: func(_ context.Context, prompt string, _ berita.CompletionOptions) (string, error) {
			return `{"sentiment":"positif","confidence":"tinggi","reasoning":"Kebijakan disambut baik."}`, nil
		}}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Scraper:  newScraper(),
			Enricher: &enrich.Enricher{Completer: completer},
		}
		cmd := &main.ScrapeCmd{URLs: []string{"https://warta.example/1", "https://warta.example/gagal"}, SentimentContext: "kebijakan energi"}

		require.NoError(t, cmd.Run(deps))

		records := decodeLines(t, stdout.String())
		enrichment, ok := records[0]["enrichment"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, berita.JournalistNotFound, enrichment["journalist"])
		assert.Equal(t, "positif", enrichment["sentiment"].(map[string]any)["sentiment"])
		assert.NotContains(t, records[1], "enrichment")
	})
}
