package main_test

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/berita"
	main "github.com/fwojciec/berita/cmd/berita"
	beritahttp "github.com/fwojciec/berita/http"
	"github.com/fwojciec/berita/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists articles with method, title and URL", func(t *testing.T) {
		t.Parallel()

		articles := &mock.ArticleService{
			FindArticlesFn: func(_ context.Context, _ berita.ArticleFilter) ([]*berita.Article, error) {
				return []*berita.Article{
					{URL: "https://news.detik.com/berita/d-1", Title: "Harga Beras Naik", Method: berita.MethodFast, ScrapedAt: time.Now()},
					{URL: "https://kompas.com/read/2", Method: berita.MethodBrowser, ScrapedAt: time.Now()},
				}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Articles: articles}

		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "Harga Beras Naik")
		assert.Contains(t, output, "https://news.detik.com/berita/d-1")
		assert.Contains(t, output, "browser")
		assert.Contains(t, output, "(no title)")
	})

	t.Run("passes filters to the store", func(t *testing.T) {
		t.Parallel()

		var got berita.ArticleFilter
		articles := &mock.ArticleService{
			FindArticlesFn: func(_ context.Context, f berita.ArticleFilter) ([]*berita.Article, error) {
				got = f
				return nil, nil
			},
		}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Articles: articles}

		err := (&main.ListCmd{Domain: "detik.com", Method: "manual", Limit: 5, Offset: 10}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.Domain)
		assert.Equal(t, "detik.com", *got.Domain)
		require.NotNil(t, got.Method)
		assert.Equal(t, berita.MethodManual, *got.Method)
		assert.Equal(t, 5, got.Limit)
		assert.Equal(t, 10, got.Offset)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Articles: &mock.ArticleService{}}

		err := (&main.ListCmd{Method: "magic"}).Run(deps)

		assert.Equal(t, berita.EINVALID, berita.ErrorCode(err))
	})

	t.Run("full output shows content", func(t *testing.T) {
		t.Parallel()

		articles := &mock.ArticleService{
			FindArticlesFn: func(context.Context, berita.ArticleFilter) ([]*berita.Article, error) {
				return []*berita.Article{{URL: "https://kompas.com/read/2", Title: "Judul", Content: body, Method: berita.MethodManual}}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Articles: articles}

		require.NoError(t, (&main.ListCmd{Full: true}).Run(deps))

		assert.Contains(t, stdout.String(), "# Judul")
		assert.Contains(t, stdout.String(), body)
	})

	t.Run("reports store errors", func(t *testing.T) {
		t.Parallel()

		articles := &mock.ArticleService{
			FindArticlesFn: func(context.Context, berita.ArticleFilter) ([]*berita.Article, error) {
				return nil, errors.New("disk I/O error")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Articles: articles}

		err := (&main.ListCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestSitesCmd_Run(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Selectors: berita.NewSelectorTable(map[string]berita.SiteSelectors{
			"warta.example": {
				Title:   berita.ParseSelectors("h1.judul", "h1"),
				Content: berita.ParseSelectors("div.isi"),
			},
		}),
	}

	require.NoError(t, (&main.SitesCmd{}).Run(deps))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"DOMAIN", "TITLE", "CONTENT", "AUTHOR", "DATE", "FIRST", "TITLE", "FIRST", "CONTENT"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"warta.example", "2", "1", "0", "0", "h1.judul", "div.isi"}, strings.Fields(lines[1]))
}

func TestProbeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports each strategy and accessibility", func(t *testing.T) {
		t.Parallel()

		// Given a site that blocks browsers but serves bots
		prober := proberFunc(func(_ context.Context, url string) ([]beritahttp.Attempt, error) {
			return []beritahttp.Attempt{
				{Strategy: "browser", Status: 403, Bytes: 120, Err: errors.New("HTTP 403")},
				{Strategy: "mobile", Err: errors.New("connection reset")},
				{Strategy: "bot", Status: 200, Bytes: 54321, Duration: 820 * time.Millisecond},
			}, nil
		})
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Selectors: berita.DefaultSelectorTable(),
			Prober:    prober,
		}

		// When probing a detik subdomain
		err := (&main.ProbeCmd{URL: "https://news.detik.com/berita/d-1"}).Run(deps)

		// Then the summary and one row per attempt are printed
		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "Domain:     detik.com")
		assert.Contains(t, out, "Selectors:  yes")
		assert.Contains(t, out, "Accessible: yes")
		assert.Regexp(t, regexp.MustCompile(`browser\s+403\s+120`), out)
		assert.Contains(t, out, "connection reset")
		assert.Regexp(t, regexp.MustCompile(`bot\s+200\s+54321\s+820ms`), out)
	})

	t.Run("inaccessible unknown site", func(t *testing.T) {
		t.Parallel()

		prober := proberFunc(func(context.Context, string) ([]beritahttp.Attempt, error) {
			return []beritahttp.Attempt{{Strategy: "browser", Status: 503, Err: errors.New("HTTP 503")}}, nil
		})
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Selectors: berita.DefaultSelectorTable(), Prober: prober}

		require.NoError(t, (&main.ProbeCmd{URL: "https://warta.example/a"}).Run(deps))

		assert.Contains(t, stdout.String(), "Selectors:  no")
		assert.Contains(t, stdout.String(), "Accessible: no")
	})

	t.Run("invalid URL", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}}

		err := (&main.ProbeCmd{URL: "  "}).Run(deps)

		assert.Equal(t, berita.EINVALID, berita.ErrorCode(err))
	})
}

type proberFunc func(ctx context.Context, url string) ([]beritahttp.Attempt, error)

func (f proberFunc) Probe(ctx context.Context, url string) ([]beritahttp.Attempt, error) {
	return f(ctx, url)
}

func TestDiscoverCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints URLs from the selected source up to the limit", func(t *testing.T) {
		t.Parallel()

		var gotFilter *berita.URLFilter
		feed := &mock.URLSource{DiscoverURLsFn: func(_ context.Context, location string, filter *berita.URLFilter) ([]string, error) {
			gotFilter = filter
			return []string{"https://warta.example/1", "https://warta.example/2", "https://warta.example/3"}, nil
		}}
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Sources: map[string]berita.URLSource{"feed": feed},
		}

		err := (&main.DiscoverCmd{Location: "https://warta.example/rss", From: "feed", Include: []string{`/\d+$`}, Limit: 2}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "https://warta.example/1\nhttps://warta.example/2\n", stdout.String())
		require.NotNil(t, gotFilter)
		assert.True(t, gotFilter.Match("https://warta.example/9"))
		assert.Contains(t, stderr.String(), "Found 2 URLs")
	})

	t.Run("no patterns means no filter", func(t *testing.T) {
		t.Parallel()

		called := false
		src := &mock.URLSource{DiscoverURLsFn: func(_ context.Context, _ string, filter *berita.URLFilter) ([]string, error) {
			called = true
			assert.Nil(t, filter)
			return nil, nil
		}}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Sources: map[string]berita.URLSource{"sitemap": src}}

		require.NoError(t, (&main.DiscoverCmd{Location: "https://warta.example", From: "sitemap"}).Run(deps))
		assert.True(t, called)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

		err := (&main.DiscoverCmd{Location: "https://warta.example", From: "sitemap", Exclude: []string{"("}}).Run(deps)

		assert.Equal(t, berita.EINVALID, berita.ErrorCode(err))
	})

	t.Run("source errors are reported", func(t *testing.T) {
		t.Parallel()

		src := &mock.URLSource{DiscoverURLsFn: func(context.Context, string, *berita.URLFilter) ([]string, error) {
			return nil, berita.Errorf(berita.ENOTFOUND, "no sitemap found for warta.example")
		}}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Sources: map[string]berita.URLSource{"sitemap": src}}

		err := (&main.DiscoverCmd{Location: "https://warta.example", From: "sitemap"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "no sitemap found")
	})
}
