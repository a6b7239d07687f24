package goquery

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// chromeTags are elements that never carry article text.
var chromeTags = []string{
	"script", "style", "noscript", "nav", "header", "footer", "aside",
	"iframe", "form", "button", "input",
	"advertisement", "ads", "menu", "sidebar",
}

// chromeTokens are matched against the class and id segments of each element.
var chromeTokens = map[string]bool{
	"ad": true, "ads": true, "advertisement": true, "promo": true,
	"banner": true, "social": true, "share": true, "comment": true,
	"related": true, "sidebar": true, "navigation": true, "menu": true,
	"breadcrumb": true, "tag": true, "category": true,
}

// structuralTags are never removed by class or id.
var structuralTags = map[string]bool{
	"html": true, "head": true, "body": true, "main": true, "article": true,
}

// Clean removes page chrome from doc in place: non-content tags first,
// then any element whose class or id contains a chrome token.
//
// Class and id values are split into segments on punctuation and camelCase
// boundaries, so "ad-slot" and "shareBar" match while "read__content" and
// "header-title" do not.
func Clean(doc *goquery.Document) {
	doc.Find(strings.Join(chromeTags, ",")).Remove()

	doc.Find("[class],[id]").Each(func(_ int, sel *goquery.Selection) {
		if structuralTags[goquery.NodeName(sel)] {
			return
		}
		class, _ := sel.Attr("class")
		id, _ := sel.Attr("id")
		if hasChromeToken(class) || hasChromeToken(id) {
			sel.Remove()
		}
	})
}

func hasChromeToken(attr string) bool {
	if attr == "" {
		return false
	}
	for _, seg := range segments(attr) {
		if chromeTokens[seg] || (strings.HasSuffix(seg, "s") && chromeTokens[strings.TrimSuffix(seg, "s")]) {
			return true
		}
	}
	return false
}

// segments splits an attribute value into lower-case words.
func segments(s string) []string {
	var out []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	var prev rune
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	flush()
	return out
}
