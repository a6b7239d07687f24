package berita

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// SelectorKind discriminates the Selector variants.
type SelectorKind int

const (
	// SelectorCSS reads the trimmed text of the first element matching Path.
	SelectorCSS SelectorKind = iota
	// SelectorMeta reads the content attribute of the meta tag whose name,
	// property or itemprop equals Name.
	SelectorMeta
	// SelectorAttribute reads attribute Key of the first element matching
	// Path, falling back to the element text when the attribute is blank.
	SelectorAttribute
)

// Selector locates one field value inside a document.
type Selector struct {
	Kind SelectorKind
	Path string
	Name string
	Key  string
}

// CSS returns a selector reading element text.
func CSS(path string) Selector {
	return Selector{Kind: SelectorCSS, Path: path}
}

// Meta returns a selector reading a meta tag's content attribute.
func Meta(name string) Selector {
	return Selector{Kind: SelectorMeta, Name: name}
}

// Attribute returns a selector reading an attribute with a text fallback.
func Attribute(path, key string) Selector {
	return Selector{Kind: SelectorAttribute, Path: path, Key: key}
}

// String renders the selector in the syntax ParseSelector accepts.
func (s Selector) String() string {
	if s.Kind == SelectorMeta {
		return `meta[name="` + s.Name + `"]`
	}
	return s.Path
}

var (
	metaSelectorRE      = regexp.MustCompile(`^meta\[\s*(?:name|property|itemprop)\s*=\s*["']?([^"'\]]+?)["']?\s*\]$`)
	attributeSelectorRE = regexp.MustCompile(`\[(data-[A-Za-z0-9_-]+)\]$`)
)

// ParseSelector turns a selector string from an external table into a
// Selector. Meta tag selectors become Meta, selectors ending in a bare
// data-* attribute become Attribute, anything else is CSS.
func ParseSelector(raw string) Selector {
	raw = strings.TrimSpace(raw)
	if m := metaSelectorRE.FindStringSubmatch(raw); m != nil {
		return Meta(m[1])
	}
	if m := attributeSelectorRE.FindStringSubmatch(raw); m != nil {
		return Attribute(raw, m[1])
	}
	return CSS(raw)
}

// ParseSelectors parses each non-blank entry of raws.
func ParseSelectors(raws ...string) []Selector {
	out := make([]Selector, 0, len(raws))
	for _, raw := range raws {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		out = append(out, ParseSelector(raw))
	}
	return out
}

// SiteSelectors holds the ordered selectors registered for one domain.
// Earlier entries win.
type SiteSelectors struct {
	Title       []Selector
	Content     []Selector
	Author      []Selector
	PublishDate []Selector
}

// Empty reports whether no selector is registered for any field.
func (s SiteSelectors) Empty() bool {
	return len(s.Title) == 0 && len(s.Content) == 0 && len(s.Author) == 0 && len(s.PublishDate) == 0
}

func (s SiteSelectors) append(o SiteSelectors) SiteSelectors {
	return SiteSelectors{
		Title:       concat(s.Title, o.Title),
		Content:     concat(s.Content, o.Content),
		Author:      concat(s.Author, o.Author),
		PublishDate: concat(s.PublishDate, o.PublishDate),
	}
}

func (s SiteSelectors) clone() SiteSelectors {
	return SiteSelectors{}.append(s)
}

func concat(a, b []Selector) []Selector {
	if len(a)+len(b) == 0 {
		return nil
	}
	out := make([]Selector, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// SelectorTable maps normalized domains to their selectors. A table is
// immutable once built and safe for concurrent reads.
type SelectorTable struct {
	sites map[string]SiteSelectors
}

// NewSelectorTable builds a table from sites. Keys are normalized with
// NormalizeDomain; keys collapsing to the same domain are appended in
// sorted key order.
func NewSelectorTable(sites map[string]SiteSelectors) SelectorTable {
	keys := make([]string, 0, len(sites))
	for k := range sites {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := SelectorTable{sites: make(map[string]SiteSelectors, len(sites))}
	for _, k := range keys {
		domain := NormalizeDomain(k)
		if domain == "" {
			continue
		}
		t.sites[domain] = t.sites[domain].append(sites[k])
	}
	return t
}

// Lookup returns the selectors for a normalized domain.
func (t SelectorTable) Lookup(domain string) (SiteSelectors, bool) {
	s, ok := t.sites[domain]
	if !ok {
		return SiteSelectors{}, false
	}
	return s.clone(), true
}

// LookupURL normalizes the URL's host and looks it up.
func (t SelectorTable) LookupURL(rawURL string) (SiteSelectors, bool) {
	return t.Lookup(NormalizeDomain(rawURL))
}

// Domains returns the registered domains in sorted order.
func (t SelectorTable) Domains() []string {
	out := make([]string, 0, len(t.sites))
	for d := range t.sites {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered domains.
func (t SelectorTable) Len() int {
	return len(t.sites)
}

// Merge returns a new table holding base's selectors followed by overlay's
// for every domain. Neither input is modified.
func Merge(base, overlay SelectorTable) SelectorTable {
	out := SelectorTable{sites: make(map[string]SiteSelectors, len(base.sites)+len(overlay.sites))}
	for d, s := range base.sites {
		out.sites[d] = s.clone()
	}
	for d, s := range overlay.sites {
		out.sites[d] = out.sites[d].append(s)
	}
	return out
}

// KnownPublishers lists the second-level labels whose subdomains collapse
// onto the registered root domain.
var KnownPublishers = []string{
	"antara",
	"antaranews",
	"cnn",
	"cnnindonesia",
	"detik",
	"kompas",
	"kumparan",
	"liputan6",
	"okezone",
	"suara",
	"tempo",
	"tribunnews",
}

// NormalizeDomain reduces a URL or bare host to the key used by the
// selector table: lowercase host without port, with subdomains of known
// publishers collapsed to their root (m.kumparan.com → kumparan.com).
// Other hosts are kept whole. Unparseable input yields "".
func NormalizeDomain(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" {
		return ""
	}

	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return host
	}
	label := parts[len(parts)-2]
	for _, p := range KnownPublishers {
		if label == p {
			return label + "." + parts[len(parts)-1]
		}
	}
	return host
}
