package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/berita"
	"github.com/fwojciec/berita/enrich"
	"github.com/fwojciec/berita/scrape"
)

// Record is one JSONL output line. Failed URLs carry only URL and Error.
type Record struct {
	*berita.Article
	URL   string `json:"url"`
	Error string `json:"error,omitempty"`
}

var summaryStyles = map[string]berita.SummaryStyle{
	"concise": berita.SummaryConcise,
	"detail":  berita.SummaryDetail,
	"bullets": berita.SummaryBullets,
	"custom":  berita.SummaryCustom,
}

// enrichOptions returns the analyses requested on the command line, or nil
// when none was.
func (c *ScrapeCmd) enrichOptions() *enrich.Options {
	opts := enrich.Options{
		SentimentContext: strings.TrimSpace(c.SentimentContext),
		Categories:       c.Categories,
	}
	if c.Summary {
		opts.Summary = &berita.SummaryOptions{
			Style:       summaryStyles[c.SummaryStyle],
			MaxWords:    c.SummaryWords,
			Language:    c.SummaryLanguage,
			Focus:       c.SummaryFocus,
			Instruction: c.SummaryInstruction,
		}
	}
	if opts.SentimentContext == "" && opts.Summary == nil && len(opts.Categories) == 0 {
		return nil
	}
	return &opts
}

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	ctx := deps.Ctx

	urls, err := c.collectURLs(deps.Stdin)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return berita.Errorf(berita.EINVALID, "no URLs given; pass them as arguments or with --input")
	}

	mode := berita.ModeFull
	if c.ContentOnly {
		mode = berita.ModeContentOnly
	}

	articles := make([]*berita.Article, len(urls))
	errs := make([]error, len(urls))

	// Stored articles are reused when asked; the rest are scraped.
	var pending []string
	var pendingIdx []int
	for i, u := range urls {
		if c.SkipExisting && deps.Articles != nil {
			if a, err := deps.Articles.FindArticleByURL(ctx, u); err == nil {
				articles[i] = a
				continue
			} else if berita.ErrorCode(err) != berita.ENOTFOUND {
				return err
			}
		}
		pending = append(pending, u)
		pendingIdx = append(pendingIdx, i)
	}
	if skipped := len(urls) - len(pending); skipped > 0 {
		fmt.Fprintf(deps.Stderr, "Reusing %d stored articles\n", skipped)
	}

	results := deps.Scraper.ScrapeAll(ctx, pending, berita.ScrapeOptions{Timeout: c.Timeout, Mode: mode}, progressPrinter(deps.Stderr))
	var scraped []*berita.Article
	for _, r := range results {
		i := pendingIdx[r.Index]
		articles[i], errs[i] = r.Article, r.Err
		if r.Article != nil {
			scraped = append(scraped, r.Article)
		}
	}

	if opts := c.enrichOptions(); opts != nil && deps.Enricher != nil {
		deps.Enricher.EnrichAll(ctx, scraped, *opts, c.Concurrency)
	}

	if deps.Articles != nil {
		for _, a := range scraped {
			if err := deps.Articles.CreateArticle(ctx, a); err != nil {
				fmt.Fprintf(deps.Stderr, "error: store %s: %s\n", a.URL, berita.ErrorMessage(err))
			}
		}
	}

	failed, err := c.output(deps, urls, articles, errs)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stderr, "Extracted %d of %d articles\n", len(urls)-failed, len(urls))
	if failed == len(urls) {
		return fmt.Errorf("no article could be extracted")
	}
	return nil
}

// output writes one record per input URL in input order and returns the
// number of failures.
func (c *ScrapeCmd) output(deps *Dependencies, urls []string, articles []*berita.Article, errs []error) (int, error) {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)

	failed := 0
	for i, u := range urls {
		a := articles[i]
		if a == nil {
			failed++
			msg := "no result"
			if errs[i] != nil {
				msg = berita.ErrorMessage(errs[i])
				if berita.ErrorCode(errs[i]) == berita.EINTERNAL {
					msg = errs[i].Error()
				}
			}
			if deps.Writer != nil {
				fmt.Fprintf(deps.Stderr, "failed: %s: %s\n", u, msg)
				continue
			}
			if err := enc.Encode(Record{URL: u, Error: msg}); err != nil {
				return failed, err
			}
			continue
		}

		if deps.Writer != nil {
			if err := deps.Writer.WriteArticle(deps.Ctx, a); err != nil {
				return failed, fmt.Errorf("write %s: %w", u, err)
			}
			continue
		}
		if err := enc.Encode(Record{Article: a, URL: a.URL}); err != nil {
			return failed, err
		}
	}
	return failed, nil
}

// collectURLs joins the positional URLs with those read from --input.
// Blank lines and lines starting with # are ignored.
func (c *ScrapeCmd) collectURLs(stdin io.Reader) ([]string, error) {
	urls := make([]string, 0, len(c.URLs))
	for _, u := range c.URLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if c.Input == "" {
		return urls, nil
	}

	var r io.Reader
	if c.Input == "-" {
		r = stdin
	} else {
		f, err := os.Open(c.Input)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return urls, nil
}

// progressPrinter reports each finished URL on w.
func progressPrinter(w io.Writer) scrape.ProgressFunc {
	return func(e scrape.ProgressEvent) {
		switch e.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(w, "Scraping %d URLs\n", e.Total)
		case scrape.ProgressCompleted:
			fmt.Fprintf(w, "[%d/%d] %-7s %s\n", e.Completed, e.Total, e.Method, e.URL)
		case scrape.ProgressFailed:
			fmt.Fprintf(w, "[%d/%d] %-7s %s\n", e.Completed, e.Total, "failed", e.URL)
		}
	}
}
