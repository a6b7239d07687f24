// Package enrich attaches language-model analyses to scraped articles:
// sentiment relative to a context, a summary, and a category from a
// caller-supplied list. Every analysis degrades to a documented sentinel
// value instead of returning an error.
package enrich

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/fwojciec/berita"
)

// Temperatures per analysis.
const (
	sentimentTemperature = 0.2
	summaryTemperature   = 0.5
	categoryTemperature  = 0.1
)

// Prompt input limits, in characters.
const (
	sentimentContentLimit = 3000
	summaryContentLimit   = 4000
	categoryContentLimit  = 3000
)

// Options selects the analyses Enrich runs. Zero values skip an analysis;
// journalist detection always runs.
type Options struct {
	SentimentContext string
	Summary          *berita.SummaryOptions
	Categories       []string
}

// Enricher runs analyses through a Completer. A nil Completer makes every
// model-backed analysis return its failure sentinel.
type Enricher struct {
	Completer berita.Completer
}

// Enrich runs the analyses selected by opts against a.
func (e *Enricher) Enrich(ctx context.Context, a *berita.Article, opts Options) *berita.Enrichment {
	out := &berita.Enrichment{
		Journalist: berita.DetectJournalist(a.Author, a.Content),
	}
	if out.Journalist == "" {
		out.Journalist = berita.JournalistNotFound
	}
	if opts.SentimentContext != "" {
		out.Sentiment = e.Sentiment(ctx, a.Content, opts.SentimentContext)
	}
	if opts.Summary != nil {
		out.Summary = e.Summarize(ctx, a.Content, *opts.Summary)
	}
	if len(opts.Categories) > 0 {
		text := a.Content
		if text == "" {
			text = a.Title
		}
		out.Category = e.Categorize(ctx, text, opts.Categories)
	}
	return out
}

func (e *Enricher) complete(ctx context.Context, prompt string, opts berita.CompletionOptions) (string, error) {
	if e.Completer == nil {
		return "", berita.Errorf(berita.EUNAVAILABLE, "language model not configured")
	}
	return e.Completer.Complete(ctx, prompt, opts)
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// decodeJSON unmarshals a model answer, tolerating a Markdown code fence
// around the object.
func decodeJSON(text string, v any) error {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	return json.Unmarshal([]byte(text), v)
}

// errorText renders err for a sentinel, preferring the application message.
func errorText(err error) string {
	if berita.ErrorCode(err) == berita.EINTERNAL {
		return err.Error()
	}
	return berita.ErrorMessage(err)
}
