// Package fs exports articles as markdown files.
package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/berita"
	"gopkg.in/yaml.v3"
)

// URLToPath converts an article URL to a relative file path under a
// directory named after the publisher domain.
// Example: https://news.detik.com/berita/d-1/judul → detik.com/berita/d-1/judul.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	domain := berita.NormalizeDomain(rawURL)
	if domain == "" {
		return "", berita.Errorf(berita.EINVALID, "article URL %q has no host", rawURL)
	}

	// Cleaning against the root keeps ".." segments inside the domain.
	p := path.Clean("/" + u.Path)
	if strings.HasSuffix(u.Path, "/") || p == "/" {
		return path.Join(domain, p, "index.md"), nil
	}
	return path.Join(domain, p) + ".md", nil
}

type frontmatter struct {
	URL         string     `yaml:"url"`
	Title       string     `yaml:"title,omitempty"`
	Author      string     `yaml:"author,omitempty"`
	PublishDate string     `yaml:"publish_date,omitempty"`
	Method      string     `yaml:"method"`
	ScrapedAt   string     `yaml:"scraped_at"`
	Journalist  string     `yaml:"journalist,omitempty"`
	Sentiment   *sentiment `yaml:"sentiment,omitempty"`
	Category    string     `yaml:"category,omitempty"`
	Summary     string     `yaml:"summary,omitempty"`
}

type sentiment struct {
	Label      string `yaml:"label"`
	Confidence string `yaml:"confidence"`
	Reasoning  string `yaml:"reasoning,omitempty"`
}

// FormatArticle renders an article as markdown with YAML frontmatter.
func FormatArticle(a *berita.Article) (string, error) {
	fm := frontmatter{
		URL:         a.URL,
		Title:       a.Title,
		Author:      a.Author,
		PublishDate: a.PublishDate,
		Method:      string(a.Method),
		ScrapedAt:   a.ScrapedAt.UTC().Format(time.RFC3339),
	}
	if e := a.Enrichment; e != nil {
		fm.Journalist = e.Journalist
		fm.Category = e.Category
		if e.Sentiment != nil {
			fm.Sentiment = &sentiment{Label: e.Sentiment.Sentiment, Confidence: e.Sentiment.Confidence, Reasoning: e.Sentiment.Reasoning}
		}
		if e.Summary != nil {
			fm.Summary = e.Summary.Summary
		}
	}

	head, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(head)
	b.WriteString("---\n\n")
	if a.Title != "" {
		b.WriteString("# ")
		b.WriteString(a.Title)
		b.WriteString("\n\n")
	}
	b.WriteString(a.Content)
	b.WriteString("\n")
	return b.String(), nil
}

var _ berita.ArticleWriter = (*Writer)(nil)

// Writer writes articles as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteArticle writes an article to disk, replacing any earlier file for
// the same URL.
func (w *Writer) WriteArticle(ctx context.Context, a *berita.Article) error {
	if err := a.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(a.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatArticle(a)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}
