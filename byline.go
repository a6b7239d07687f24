package berita

import (
	"regexp"
	"strings"
)

const namePattern = `([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)*)`

// bylinePatterns find reporter names in article text, most specific first.
var bylinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:Oleh|By|Penulis|Reporter|Wartawan)[\s:]+` + namePattern),
	regexp.MustCompile(namePattern + `\s*[-–—]\s*(?:Reporter|Wartawan|Jurnalis)`),
	regexp.MustCompile(`(?m)(?:^|\n)` + namePattern + `\s*[-–—]\s*[A-Z][a-z]+`),
	regexp.MustCompile(`(?:Ditulis oleh|Written by)\s+` + namePattern),
}

// DetectJournalist returns the article's reporter. An author already
// recovered by an extractor wins; otherwise the first byline in content
// naming at least two words is used. It returns "" when nothing matches.
func DetectJournalist(author, content string) string {
	if author = strings.TrimSpace(author); author != "" {
		return author
	}
	for _, re := range bylinePatterns {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			name := strings.TrimSpace(m[1])
			if len(strings.Fields(name)) >= 2 {
				return name
			}
		}
	}
	return ""
}
