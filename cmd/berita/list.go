package main

import (
	"fmt"

	"github.com/fwojciec/berita"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := berita.ArticleFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Domain != "" {
		filter.Domain = &c.Domain
	}
	if c.Method != "" {
		m := berita.Method(c.Method)
		switch m {
		case berita.MethodFast, berita.MethodManual, berita.MethodBrowser:
		default:
			return berita.Errorf(berita.EINVALID, "unknown method %q: use fast, manual or browser", c.Method)
		}
		filter.Method = &m
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", berita.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'berita scrape --db' to store some.")
		return nil
	}

	if c.Full {
		for i, a := range articles {
			if i > 0 {
				fmt.Fprintln(deps.Stdout)
			}
			fmt.Fprintf(deps.Stdout, "# %s\n%s | %s | %s\n\n%s\n", displayTitle(a), a.URL, a.Method, a.ScrapedAt.Local().Format("2006-01-02 15:04"), a.Content)
		}
		return nil
	}

	rows := [][]string{{"SCRAPED", "METHOD", "TITLE", "URL"}}
	for _, a := range articles {
		rows = append(rows, []string{a.ScrapedAt.Local().Format("2006-01-02 15:04"), string(a.Method), clip(displayTitle(a), 50), a.URL})
	}
	return writeTable(deps.Stdout, rows)
}

func displayTitle(a *berita.Article) string {
	if a.Title == "" {
		return "(no title)"
	}
	return a.Title
}
