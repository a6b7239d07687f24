package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/berita"
	beritacsv "github.com/fwojciec/berita/csvutil"
	"github.com/fwojciec/berita/enrich"
	"github.com/fwojciec/berita/fs"
	"github.com/fwojciec/berita/gemini"
	beritafeed "github.com/fwojciec/berita/gofeed"
	"github.com/fwojciec/berita/goquery"
	beritahttp "github.com/fwojciec/berita/http"
	beritaopenai "github.com/fwojciec/berita/openai"
	"github.com/fwojciec/berita/readability"
	"github.com/fwojciec/berita/rod"
	"github.com/fwojciec/berita/scrape"
	beritaslog "github.com/fwojciec/berita/slog"
	"github.com/fwojciec/berita/sqlite"
	"github.com/fwojciec/berita/trafilatura"
	beritayaml "github.com/fwojciec/berita/yaml"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read by "scrape --input -".
	Stdin io.Reader

	// SQLite database, opened only by commands that use the results store.
	DB *sqlite.DB

	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("berita"),
		kong.Description("Extract structured articles from Indonesian news sites"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'berita --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Selectors, err = loadSelectors(ctx, cli.Selectors)
	if err != nil {
		return err
	}

	defer m.Close()

	switch cmd {
	case "scrape":
		if err := m.wireScrape(cli, deps); err != nil {
			return err
		}
	case "probe":
		deps.Prober = beritahttp.NewLadder(beritahttp.WithAttemptTimeout(cli.Probe.Timeout))
	case "discover":
		deps.Sources = map[string]berita.URLSource{
			"sitemap": beritaslog.NewLoggingURLSource(beritahttp.NewSitemapSource(nil), deps.Logger),
			"feed":    beritaslog.NewLoggingURLSource(beritafeed.NewFeedSource(nil), deps.Logger),
			"index": beritaslog.NewLoggingURLSource(&goquery.IndexSource{
				Fetcher: beritahttp.NewLadder(),
			}, deps.Logger),
		}
	case "list":
		path := cli.DB
		if path == "" {
			path = defaultDBPath()
		}
		if err := m.openDB(path, stderr, deps); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(path string, stderr io.Writer, deps *Dependencies) error {
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set BERITA_DB or --db to use a different database path")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	m.closers = append(m.closers, m.DB.Close)
	deps.Articles = sqlite.NewArticleService(m.DB)
	return nil
}

// wireScrape builds the acquisition cascade, the results store, the
// output writer and the enricher for the scrape command.
func (m *Main) wireScrape(cli *CLI, deps *Dependencies) error {
	c := &cli.Scrape
	logger := deps.Logger
	table := deps.Selectors

	var fastExtractor berita.Extractor = trafilatura.NewExtractor()
	if c.Fast == "readability" {
		fastExtractor = readability.NewExtractor()
	}
	manualExtractor := beritaslog.NewLoggingExtractor(goquery.NewExtractor(table), "goquery", logger)

	ladder := beritahttp.NewLadder(beritahttp.WithAttemptTimeout(c.Timeout))
	methods := []scrape.Method{
		{
			Name:      berita.MethodFast,
			Fetcher:   beritaslog.NewLoggingFetcher(beritahttp.NewFetcher(beritahttp.WithTimeout(c.Timeout)), "http", logger),
			Extractor: beritaslog.NewLoggingExtractor(fastExtractor, c.Fast, logger),
		},
		{
			Name:      berita.MethodManual,
			Fetcher:   beritaslog.NewLoggingFetcher(ladder, "ladder", logger),
			Extractor: manualExtractor,
			Timeout:   ladder.Budget(),
		},
	}

	if !c.NoBrowser {
		browserTimeout := c.Timeout + rod.DefaultSettleDelay
		browser, err := rod.NewFetcher(rod.WithFetchTimeout(browserTimeout))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed, or pass --no-browser")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		m.closers = append(m.closers, browser.Close)
		methods = append(methods, scrape.Method{
			Name:      berita.MethodBrowser,
			Fetcher:   beritaslog.NewLoggingFetcher(browser, "rod", logger),
			Extractor: manualExtractor,
			Timeout:   browserTimeout,
		})
	}

	deps.Scraper = &scrape.Scraper{
		Methods:     methods,
		RateLimiter: scrape.NewDomainLimiter(c.RPS),
		Concurrency: c.Concurrency,
		Timeout:     c.Timeout,
		Logger:      logger,
	}

	if cli.DB != "" {
		if err := m.openDB(cli.DB, deps.Stderr, deps); err != nil {
			return err
		}
	} else if c.SkipExisting {
		return berita.Errorf(berita.EINVALID, "--skip-existing needs a results store; set --db or BERITA_DB")
	}

	if c.Format == "markdown" {
		if c.Out == "" {
			return berita.Errorf(berita.EINVALID, "--format markdown needs --out")
		}
		deps.Writer = fs.NewWriter(c.Out)
	}

	if c.enrichOptions() != nil {
		completer, err := newCompleter(deps.Ctx, c)
		if err != nil {
			return err
		}
		deps.Enricher = &enrich.Enricher{
			Completer: enrich.NewRetryCompleter(beritaslog.NewLoggingCompleter(completer, logger)),
		}
	}

	return nil
}

// newCompleter picks the OpenAI-compatible endpoint when a base URL is
// configured and the Gemini API otherwise.
func newCompleter(ctx context.Context, c *ScrapeCmd) (berita.Completer, error) {
	if c.OpenAIBaseURL != "" {
		key := c.OpenAIAPIKey
		if key == "" {
			key = c.GeminiAPIKey
		}
		return beritaopenai.NewCompleter(key, c.OpenAIBaseURL, c.Model)
	}
	if c.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}
	client, err := gemini.NewClient(ctx, c.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return gemini.NewCompleter(client, c.Model), nil
}

// loadSelectors returns the built-in table extended with the external
// table at path, if any.
func loadSelectors(ctx context.Context, path string) (berita.SelectorTable, error) {
	table := berita.DefaultSelectorTable()
	if path == "" {
		return table, nil
	}

	var source berita.SelectorSource
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		source = beritacsv.NewSource(path)
	case ".yaml", ".yml":
		source = beritayaml.NewSource(path)
	default:
		return berita.SelectorTable{}, berita.Errorf(berita.EINVALID, "unsupported selector table %q: use .csv, .yaml or .yml", path)
	}

	extra, err := source.LoadSelectors(ctx)
	if err != nil {
		return berita.SelectorTable{}, fmt.Errorf("failed to load selectors from %q: %w", path, err)
	}
	return berita.Merge(table, extra), nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "berita.db"
	}
	dir := filepath.Join(home, ".berita")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "berita.db")
}
