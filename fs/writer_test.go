package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/berita"
	"github.com/fwojciec/berita/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const body = "Pemerintah mengumumkan kebijakan baru tentang subsidi energi hari ini. " +
	"Kebijakan tersebut mulai berlaku pada awal bulan depan di seluruh provinsi. " +
	"Para pengamat menilai langkah ini akan menekan inflasi dalam jangka pendek."

func TestURLToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "publisher subdomain collapses to root domain",
			url:  "https://news.detik.com/berita/d-7123456/judul-berita",
			want: "detik.com/berita/d-7123456/judul-berita.md",
		},
		{
			name: "unknown host kept whole",
			url:  "https://www.warta.example/2024/03/kabar",
			want: "www.warta.example/2024/03/kabar.md",
		},
		{
			name: "trailing slash becomes index",
			url:  "https://kompas.com/read/",
			want: "kompas.com/read/index.md",
		},
		{
			name: "root path becomes index",
			url:  "https://kompas.com",
			want: "kompas.com/index.md",
		},
		{
			name: "ignores query string and fragment",
			url:  "https://kompas.com/read/1?page=all#komentar",
			want: "kompas.com/read/1.md",
		},
		{
			name: "dot segments stay inside the domain",
			url:  "https://warta.example/../../etc/passwd",
			want: "warta.example/etc/passwd.md",
		},
		{
			name:    "no host",
			url:     "/berita/1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.URLToPath(tt.url)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// split separates a rendered file into decoded frontmatter and body.
func split(t *testing.T, content string) (map[string]any, string) {
	t.Helper()
	require.True(t, strings.HasPrefix(content, "---\n"))
	head, rest, ok := strings.Cut(strings.TrimPrefix(content, "---\n"), "---\n\n")
	require.True(t, ok)

	var fm map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(head), &fm))
	return fm, rest
}

func TestFormatArticle(t *testing.T) {
	t.Parallel()

	t.Run("full article with enrichment", func(t *testing.T) {
		t.Parallel()

		a := &berita.Article{
			URL:         "https://news.detik.com/berita/d-1",
			Title:       "Kebijakan Subsidi Energi",
			Content:     body,
			Author:      "Rina Marlina",
			PublishDate: "2024-03-01T10:00:00+07:00",
			Method:      berita.MethodManual,
			ScrapedAt:   time.Date(2024, 3, 1, 5, 0, 0, 0, time.UTC),
			Enrichment: &berita.Enrichment{
				Journalist: "Rina Marlina",
				Sentiment:  &berita.Sentiment{Sentiment: "positif", Confidence: "tinggi", Reasoning: "Mendukung."},
				Summary:    &berita.Summary{Summary: "Subsidi energi diubah.", WordCount: 3},
				Category:   "Ekonomi",
			},
		}

		got, err := fs.FormatArticle(a)
		require.NoError(t, err)

		fm, rest := split(t, got)
		assert.Equal(t, "https://news.detik.com/berita/d-1", fm["url"])
		assert.Equal(t, "Kebijakan Subsidi Energi", fm["title"])
		assert.Equal(t, "Rina Marlina", fm["author"])
		assert.Equal(t, "2024-03-01T10:00:00+07:00", fm["publish_date"])
		assert.Equal(t, "manual", fm["method"])
		assert.Equal(t, "2024-03-01T05:00:00Z", fm["scraped_at"])
		assert.Equal(t, "Ekonomi", fm["category"])
		assert.Equal(t, "Subsidi energi diubah.", fm["summary"])
		assert.Equal(t, map[string]any{"label": "positif", "confidence": "tinggi", "reasoning": "Mendukung."}, fm["sentiment"])
		assert.Equal(t, "# Kebijakan Subsidi Energi\n\n"+body+"\n", rest)
	})

	t.Run("content-only article omits empty fields", func(t *testing.T) {
		t.Parallel()

		a := &berita.Article{
			URL:       "https://kompas.com/read/1",
			Content:   body,
			Method:    berita.MethodFast,
			ScrapedAt: time.Date(2024, 3, 1, 5, 0, 0, 0, time.UTC),
		}

		got, err := fs.FormatArticle(a)
		require.NoError(t, err)

		fm, rest := split(t, got)
		assert.NotContains(t, fm, "title")
		assert.NotContains(t, fm, "author")
		assert.NotContains(t, fm, "sentiment")
		assert.Equal(t, body+"\n", rest)
	})
}

func TestWriter_WriteArticle(t *testing.T) {
	t.Parallel()

	t.Run("writes article under its domain directory", func(t *testing.T) {
		t.Parallel()

		// Given an output directory
		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir)
		a := &berita.Article{
			URL:       "https://m.kumparan.com/kumparannews/kabar-1",
			Title:     "Kabar",
			Content:   body,
			Method:    berita.MethodBrowser,
			ScrapedAt: time.Now(),
		}

		// When writing the article
		err := w.WriteArticle(context.Background(), a)

		// Then the markdown file lands in the normalized domain directory
		require.NoError(t, err)
		content, err := os.ReadFile(filepath.Join(baseDir, "kumparan.com", "kumparannews", "kabar-1.md"))
		require.NoError(t, err)
		assert.Contains(t, string(content), body)
	})

	t.Run("rewriting replaces the file", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir)
		a := &berita.Article{URL: "https://kompas.com/read/1", Title: "Lama", Content: body, Method: berita.MethodFast}
		require.NoError(t, w.WriteArticle(context.Background(), a))

		a.Title = "Baru"
		require.NoError(t, w.WriteArticle(context.Background(), a))

		content, err := os.ReadFile(filepath.Join(baseDir, "kompas.com", "read", "1.md"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "# Baru")
		assert.NotContains(t, string(content), "# Lama")
	})

	t.Run("validates article", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())

		err := w.WriteArticle(context.Background(), &berita.Article{URL: "https://kompas.com/read/1", Content: "pendek"})

		require.Error(t, err)
		assert.Equal(t, berita.EINVALID, berita.ErrorCode(err))
	})
}
