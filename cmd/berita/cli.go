package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/berita"
	"github.com/fwojciec/berita/enrich"
	beritahttp "github.com/fwojciec/berita/http"
	"github.com/fwojciec/berita/scrape"
)

// Prober reports how a site answers each request strategy.
type Prober interface {
	Probe(ctx context.Context, url string) ([]beritahttp.Attempt, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Selectors berita.SelectorTable
	Scraper   *scrape.Scraper
	Enricher  *enrich.Enricher
	Articles  berita.ArticleService
	Writer    berita.ArticleWriter
	Prober    Prober

	// URL sources by kind: sitemap, feed, index.
	Sources map[string]berita.URLSource
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose   bool   `short:"v" help:"Log every fetch, extraction and model call to stderr"`
	Selectors string `short:"s" type:"path" env:"BERITA_SELECTORS" help:"Extra selector table (.csv, .yaml or .yml) appended to the built-in one"`
	DB        string `type:"path" env:"BERITA_DB" help:"SQLite results store"`

	Scrape   ScrapeCmd   `cmd:"" help:"Extract articles from news URLs"`
	Sites    SitesCmd    `cmd:"" help:"List publishers with registered selectors"`
	Probe    ProbeCmd    `cmd:"" help:"Check how a site answers each request strategy"`
	Discover DiscoverCmd `cmd:"" help:"List article URLs from a sitemap, feed or index page"`
	List     ListCmd     `cmd:"" help:"List stored articles"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs  []string `arg:"" optional:"" help:"Article URLs"`
	Input string   `short:"i" help:"Read URLs from a file, one per line (- for stdin)"`

	Concurrency  int           `short:"c" default:"5" help:"Concurrent article limit"`
	Timeout      time.Duration `short:"t" default:"30s" help:"Timeout per acquisition method"`
	RPS          float64       `default:"1" help:"Requests per second per domain (0 disables pacing)"`
	ContentOnly  bool          `help:"Extract only the article body"`
	NoBrowser    bool          `help:"Skip the headless browser method"`
	Fast         string        `enum:"trafilatura,readability" default:"trafilatura" help:"Extractor for the fast method (${enum})"`
	SkipExisting bool          `help:"Reuse articles already in the results store"`

	Format string `short:"f" enum:"jsonl,markdown" default:"jsonl" help:"Output format (${enum})"`
	Out    string `short:"o" type:"path" help:"Directory for markdown output"`

	SentimentContext   string   `help:"Judge sentiment relative to this context"`
	Summary            bool     `help:"Summarize each article"`
	SummaryStyle       string   `enum:"concise,detail,bullets,custom" default:"concise" help:"Summary style (${enum})"`
	SummaryWords       int      `default:"150" help:"Maximum summary length in words"`
	SummaryLanguage    string   `default:"Bahasa Indonesia" help:"Summary language"`
	SummaryFocus       string   `help:"Aspect the summary should focus on"`
	SummaryInstruction string   `help:"Instruction for the custom summary style"`
	Categories         []string `short:"C" name:"category" help:"Candidate category as 'Name: description' (repeatable)"`

	Model         string `default:"gemini-2.5-flash" help:"Language model for enrichment"`
	GeminiAPIKey  string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	OpenAIAPIKey  string `name:"openai-api-key" env:"OPENAI_API_KEY" help:"API key for an OpenAI-compatible endpoint"`
	OpenAIBaseURL string `name:"openai-base-url" env:"OPENAI_BASE_URL,GEMINI_BASE_URL" help:"Base URL of an OpenAI-compatible endpoint"`
}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}

// ProbeCmd is the "probe" subcommand.
type ProbeCmd struct {
	URL     string        `arg:"" help:"Article or site URL"`
	Timeout time.Duration `short:"t" default:"15s" help:"Timeout per strategy"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	Location string   `arg:"" help:"Site, sitemap, feed or index page URL"`
	From     string   `enum:"sitemap,feed,index" default:"sitemap" help:"Kind of listing at the location (${enum})"`
	Include  []string `short:"I" help:"Keep only URLs matching this regex (repeatable)"`
	Exclude  []string `short:"E" help:"Drop URLs matching this regex (repeatable)"`
	Limit    int      `short:"n" help:"Print at most this many URLs"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Domain string `short:"d" help:"Only articles from this publisher"`
	Method string `short:"m" help:"Only articles extracted by this method (fast, manual, browser)"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of articles"`
	Offset int    `help:"Skip this many articles"`
	Full   bool   `help:"Show article content"`
}
