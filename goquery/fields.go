package goquery

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/berita"
	"golang.org/x/net/html"
)

const (
	minTitleLength   = 5
	maxTitleLength   = 200
	minContentLength = 200
	minParagraphLen  = 30
)

var genericTitleSelectors = []berita.Selector{
	berita.CSS("h1.entry-title"),
	berita.CSS("h1.post-title"),
	berita.CSS("h1.article-title"),
	berita.CSS(`h1[class*="title"]`),
	berita.CSS(`h1[class*="headline"]`),
	berita.CSS(`h1[class*="Title"]`),
	berita.CSS(".entry-title h1"),
	berita.CSS(".post-title h1"),
	berita.CSS(".article-title h1"),
	berita.Meta("og:title"),
	berita.Meta("twitter:title"),
	berita.CSS("title"),
	berita.CSS("h1"),
	berita.CSS(".title"),
	berita.CSS(".headline"),
	berita.CSS(".Title"),
}

var genericContentSelectors = []berita.Selector{
	berita.CSS("article .content"),
	berita.CSS("article .body"),
	berita.CSS("article .text"),
	berita.CSS(".article-content"),
	berita.CSS(".post-content"),
	berita.CSS(".entry-content"),
	berita.CSS(".article-body"),
	berita.CSS(".post-body"),
	berita.CSS(".content-body"),
	berita.CSS(".detail-content"),
	berita.CSS(".news-content"),
	berita.CSS(".story-content"),
	berita.CSS(".Story__Content"),
	berita.CSS(".Article__Content"),
	berita.CSS(".StoryContent__Wrapper"),
	berita.CSS(".DetailStory__Content"),
	berita.CSS("article"),
	berita.CSS("main"),
	berita.CSS(".content"),
}

var dateMetaNames = []string{
	"article:published_time",
	"og:article:published_time",
	"datePublished",
	"pubdate",
	"publishdate",
	"date",
	"parsely-pub-date",
}

// First returns the value of the first element matched by s, or "".
func First(doc *goquery.Document, s berita.Selector) string {
	switch s.Kind {
	case berita.SelectorMeta:
		return metaContent(doc, s.Name)
	case berita.SelectorAttribute:
		sel := doc.Find(s.Path).First()
		if v, ok := sel.Attr(s.Key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return Text(sel)
	default:
		return Text(doc.Find(s.Path).First())
	}
}

// All returns the values of the outermost elements matched by s, joined
// with spaces. Matches nested inside another match are skipped.
func All(doc *goquery.Document, s berita.Selector) string {
	if s.Kind == berita.SelectorMeta {
		return metaContent(doc, s.Name)
	}
	var parts []string
	for _, sel := range outermost(doc.Find(s.Path)) {
		if v := value(sel, s); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// Text returns the text nodes under sel, each trimmed and joined with a
// single space.
func Text(sel *goquery.Selection) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return collapse(strings.Join(parts, " "))
}

// value reads an attribute selector's key, falling back to element text.
func value(sel *goquery.Selection, s berita.Selector) string {
	if s.Kind == berita.SelectorAttribute {
		if v, ok := sel.Attr(s.Key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return Text(sel)
}

// outermost returns the matches of sel that have no matched ancestor, in
// document order.
func outermost(sel *goquery.Selection) []*goquery.Selection {
	matched := make(map[*html.Node]bool, sel.Length())
	for _, n := range sel.Nodes {
		matched[n] = true
	}
	var out []*goquery.Selection
	sel.Each(func(_ int, s *goquery.Selection) {
		for p := s.Nodes[0].Parent; p != nil; p = p.Parent {
			if matched[p] {
				return
			}
		}
		out = append(out, s)
	})
	return out
}

// contentOf returns the body found by s. Paragraph matches are joined;
// otherwise each outermost match is judged on its own and the first one
// long enough wins.
func contentOf(doc *goquery.Document, s berita.Selector) string {
	if s.Kind == berita.SelectorMeta {
		return qualify(metaContent(doc, s.Name))
	}
	matches := outermost(doc.Find(s.Path))
	paragraphs := len(matches) > 0
	for _, m := range matches {
		if goquery.NodeName(m) != "p" {
			paragraphs = false
			break
		}
	}
	if paragraphs {
		return qualify(All(doc, s))
	}
	for _, m := range matches {
		if v := qualify(value(m, s)); v != "" {
			return v
		}
	}
	return ""
}

// qualify normalizes text and returns it if it is long enough to be a body.
func qualify(text string) string {
	v := berita.NormalizeContent(text)
	if utf8.RuneCountInString(v) > minContentLength {
		return v
	}
	return ""
}

func metaContent(doc *goquery.Document, name string) string {
	q := `meta[name="` + name + `"],meta[property="` + name + `"],meta[itemprop="` + name + `"]`
	var out string
	doc.Find(q).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		v, _ := sel.Attr("content")
		out = strings.TrimSpace(v)
		return out == ""
	})
	return out
}

// Title returns the first candidate strictly between 5 and 200 characters,
// trying site selectors before the generic list. It returns "" when none
// qualifies.
func Title(doc *goquery.Document, site []berita.Selector) string {
	for _, list := range [][]berita.Selector{site, genericTitleSelectors} {
		for _, s := range list {
			v := First(doc, s)
			if n := utf8.RuneCountInString(v); n > minTitleLength && n < maxTitleLength {
				return v
			}
		}
	}
	return ""
}

// Content returns the normalized article body. Site selectors are tried
// first, then the generic containers, then every paragraph longer than
// 30 characters that is not boilerplate. A selector qualifies when its
// normalized text exceeds 200 characters.
func Content(doc *goquery.Document, site []berita.Selector) string {
	for _, list := range [][]berita.Selector{site, genericContentSelectors} {
		for _, s := range list {
			if v := contentOf(doc, s); v != "" {
				return v
			}
		}
	}
	return berita.NormalizeContent(Paragraphs(doc))
}

// Paragraphs concatenates the substantive <p> texts of doc.
func Paragraphs(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		text := Text(sel)
		if utf8.RuneCountInString(text) > minParagraphLen && !berita.IsUnwantedParagraph(text) {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}

// Author returns the first non-empty site selector match. There is no
// generic fallback.
func Author(doc *goquery.Document, site []berita.Selector) string {
	for _, s := range site {
		if v := First(doc, s); v != "" {
			return v
		}
	}
	return ""
}

// PublishDate runs the date cascade: meta tags, <time>, JSON-LD and
// finally the site selectors. The value is returned as found on the page.
func PublishDate(doc *goquery.Document, site []berita.Selector) string {
	for _, name := range dateMetaNames {
		if v := metaContent(doc, name); v != "" {
			return v
		}
	}

	if t := doc.Find("time").First(); t.Length() > 0 {
		if v, ok := t.Attr("datetime"); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		if v := Text(t); v != "" {
			return v
		}
	}

	var found string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return true
		}
		found = linkedDataDate(data)
		return found == ""
	})
	if found != "" {
		return found
	}

	for _, s := range site {
		if v := First(doc, s); v != "" {
			return v
		}
	}
	return ""
}

// linkedDataDate searches a decoded JSON-LD value for datePublished or
// uploadDate, descending into arrays and @graph.
func linkedDataDate(v any) string {
	switch x := v.(type) {
	case []any:
		for _, item := range x {
			if d := linkedDataDate(item); d != "" {
				return d
			}
		}
	case map[string]any:
		for _, key := range []string{"datePublished", "uploadDate"} {
			if s, ok := x[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
		if g, ok := x["@graph"]; ok {
			return linkedDataDate(g)
		}
	}
	return ""
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
