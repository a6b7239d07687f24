// Package csvutil loads external selector tables from CSV files.
package csvutil

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/fwojciec/berita"
	"github.com/jszwec/csvutil"
)

var _ berita.SelectorSource = (*Source)(nil)

// headerAliases maps lowercased column names onto row fields. The
// Indonesian names come from the spreadsheet newsroom teams maintain.
var headerAliases = map[string]string{
	"media":        "domain",
	"domain":       "domain",
	"judul":        "title",
	"title":        "title",
	"reporter":     "author",
	"penulis":      "author",
	"author":       "author",
	"isi":          "content",
	"content":      "content",
	"tanggal":      "publish_date",
	"date":         "publish_date",
	"publish_date": "publish_date",
}

type row struct {
	Domain      string `csv:"domain"`
	Title       string `csv:"title"`
	Content     string `csv:"content"`
	Author      string `csv:"author"`
	PublishDate string `csv:"publish_date"`
}

// Source reads a selector table from a CSV file with one selector per
// cell. A domain may span several rows; its selectors are appended in row
// order.
type Source struct {
	Path string
}

// NewSource returns a Source reading path.
func NewSource(path string) *Source {
	return &Source{Path: path}
}

// LoadSelectors reads the table. A missing file yields an empty table.
// Rows with a malformed quote or a wrong field count are skipped.
func (s *Source) LoadSelectors(ctx context.Context) (berita.SelectorTable, error) {
	if err := ctx.Err(); err != nil {
		return berita.SelectorTable{}, err
	}

	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return berita.NewSelectorTable(nil), nil
	} else if err != nil {
		return berita.SelectorTable{}, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a selector table from CSV data.
func Parse(r io.Reader) (berita.SelectorTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return berita.NewSelectorTable(nil), nil
	} else if err != nil {
		return berita.SelectorTable{}, berita.Errorf(berita.EINVALID, "read selector header: %v", err)
	}
	header = normalizeHeader(header)
	if !slices.Contains(header, "domain") {
		return berita.SelectorTable{}, berita.Errorf(berita.EINVALID, "selector table has no domain column")
	}

	dec, err := csvutil.NewDecoder(cr, header...)
	if err != nil {
		return berita.SelectorTable{}, berita.Errorf(berita.EINVALID, "selector header: %v", err)
	}

	sites := make(map[string]berita.SiteSelectors)
	for {
		var rec row
		err := dec.Decode(&rec)
		if err == io.EOF {
			break
		}
		var perr *csv.ParseError
		if errors.Is(err, csvutil.ErrFieldCount) || errors.As(err, &perr) {
			continue
		} else if err != nil {
			return berita.SelectorTable{}, err
		}

		domain := berita.NormalizeDomain(rec.Domain)
		if domain == "" {
			continue
		}
		site := sites[domain]
		site.Title = append(site.Title, berita.ParseSelectors(rec.Title)...)
		site.Content = append(site.Content, berita.ParseSelectors(rec.Content)...)
		site.Author = append(site.Author, berita.ParseSelectors(rec.Author)...)
		site.PublishDate = append(site.PublishDate, berita.ParseSelectors(rec.PublishDate)...)
		sites[domain] = site
	}

	return berita.NewSelectorTable(sites), nil
}

// normalizeHeader maps column names to row fields. Only the first column
// for each field is read; repeats and unknown columns are ignored.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if alias, ok := headerAliases[h]; ok && !seen[alias] {
			seen[alias] = true
			h = alias
		} else {
			// Ignored columns must stay unique.
			h = "_" + strconv.Itoa(i) + "_" + h
		}
		out[i] = h
	}
	return out
}
