// Package yaml loads external selector tables from YAML files.
//
// The file maps domains to selector lists:
//
//	sites:
//	  warta.example:
//	    title: ["h1.judul"]
//	    content: ["div.isi-berita"]
//	    author: [".penulis"]
//	    publish_date: ['meta[name="pubdate"]']
package yaml

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/fwojciec/berita"
	"gopkg.in/yaml.v3"
)

var _ berita.SelectorSource = (*Source)(nil)

type document struct {
	Sites map[string]site `yaml:"sites"`
}

type site struct {
	Title       []string `yaml:"title"`
	Content     []string `yaml:"content"`
	Author      []string `yaml:"author"`
	PublishDate []string `yaml:"publish_date"`
}

// Source reads a selector table from a YAML file.
type Source struct {
	Path string
}

// NewSource returns a Source reading path.
func NewSource(path string) *Source {
	return &Source{Path: path}
}

// LoadSelectors reads the table. A missing file yields an empty table.
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

// Parse reads a selector table from YAML data.
func Parse(r io.Reader) (berita.SelectorTable, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return berita.SelectorTable{}, berita.Errorf(berita.EINVALID, "parse selector table: %v", err)
	}

	sites := make(map[string]berita.SiteSelectors, len(doc.Sites))
	for domain, s := range doc.Sites {
		sel := berita.SiteSelectors{
			Title:       berita.ParseSelectors(s.Title...),
			Content:     berita.ParseSelectors(s.Content...),
			Author:      berita.ParseSelectors(s.Author...),
			PublishDate: berita.ParseSelectors(s.PublishDate...),
		}
		if sel.Empty() {
			continue
		}
		sites[domain] = sel
	}
	return berita.NewSelectorTable(sites), nil
}
