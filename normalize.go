package berita

import (
	"regexp"
	"strings"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// nonWord matches up to the next word character.
const nonWord = `[^\p{L}\p{N}_]*`

// boilerplatePatterns strip cross-link prompts, placeholders, copyright
// notices and calls to action. Each prompt is removed together with the
// punctuation and spacing that follows it.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bbaca juga\s*:` + nonWord),
	regexp.MustCompile(`(?i)\blihat juga\s*:` + nonWord),
	regexp.MustCompile(`(?i)\bADVERTISEMENT\b` + nonWord),
	regexp.MustCompile(`(?i)\bCONTINUE READING\b` + nonWord),
	regexp.MustCompile(`(?i)\bloading\.\.\.`),
	regexp.MustCompile(`(?i)\btunggu sebentar\.\.\.`),
	regexp.MustCompile(`(?i)\bmohon tunggu\.\.\.`),
	regexp.MustCompile(`(?i)\bcopyright\b.*`),
	regexp.MustCompile(`©.*`),
	regexp.MustCompile(`(?i)\ball rights reserved\b.*`),
	regexp.MustCompile(`(?i)\bdaftarkan email\b` + nonWord),
	regexp.MustCompile(`(?i)\bberlangganan\b` + nonWord),
	regexp.MustCompile(`(?i)\bfollow\b` + nonWord),
	regexp.MustCompile(`(?i)\bshare\b` + nonWord),
	regexp.MustCompile(`(?i)\bbagikan\b` + nonWord),
	regexp.MustCompile(`(?i)\bikuti kami\b` + nonWord),
	regexp.MustCompile(`(?i)\bsubscribe\b` + nonWord),
}

// NormalizeContent collapses whitespace, strips boilerplate phrases and
// trims the result. Passes repeat until the text stops changing, so
// NormalizeContent(NormalizeContent(s)) == NormalizeContent(s).
func NormalizeContent(text string) string {
	for {
		next := normalizeOnce(text)
		if next == text {
			return next
		}
		text = next
	}
}

func normalizeOnce(text string) string {
	text = whitespaceRE.ReplaceAllString(text, " ")
	for _, re := range boilerplatePatterns {
		text = re.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

// unwantedParagraphPhrases mark paragraphs that are navigation or
// promotion rather than article text.
var unwantedParagraphPhrases = []string{
	"baca juga",
	"lihat juga",
	"follow",
	"subscribe",
	"advertisement",
	"copyright",
	"©",
	"all rights reserved",
	"terms of service",
	"privacy policy",
	"cookie policy",
	"loading",
	"please wait",
	"daftarkan email",
	"berlangganan",
	"subscribe newsletter",
	"ikuti kami",
	"follow us",
	"share artikel",
	"bagikan artikel",
}

// IsUnwantedParagraph reports whether a paragraph contains any
// boilerplate phrase, case-insensitively.
func IsUnwantedParagraph(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range unwantedParagraphPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
