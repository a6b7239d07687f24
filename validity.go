package berita

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MinContentLength is the minimum trimmed length, in characters, of
	// valid article content.
	MinContentLength = 100
	// MinSentences is the minimum number of meaningful sentences.
	MinSentences = 3
	// minSentenceLength is the length a sentence must exceed to count.
	minSentenceLength = 20
)

// blockedPhrases mark error pages, interstitials and paywalls.
var blockedPhrases = []string{
	"access denied",
	"403 forbidden",
	"404 not found",
	"500 internal server",
	"blocked",
	"captcha",
	"robot",
	"bot detected",
	"please enable javascript",
	"subscription required",
	"paywall",
	"premium content",
	"login required",
	"halaman tidak ditemukan",
	"akses ditolak",
	"konten tidak tersedia",
}

var sentenceSplitRE = regexp.MustCompile(`[.!?]+`)

// IsValidContent reports whether text looks like a real article body rather
// than an error page, a bot challenge or a stub. It is pure and is the
// single gate deciding whether an acquisition method succeeded.
func IsValidContent(text string) bool {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < MinContentLength {
		return false
	}

	lower := strings.ToLower(trimmed)
	for _, phrase := range blockedPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}

	meaningful := 0
	for _, sentence := range sentenceSplitRE.Split(trimmed, -1) {
		if utf8.RuneCountInString(strings.TrimSpace(sentence)) > minSentenceLength {
			meaningful++
		}
	}
	return meaningful >= MinSentences
}
