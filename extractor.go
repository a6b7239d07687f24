package berita

// Extractor recovers article fields from page HTML.
type Extractor interface {
	// Extract processes raw HTML fetched from pageURL. Fields that cannot
	// be found are left empty; an error means the HTML could not be
	// processed at all. In ModeContentOnly only Content is filled.
	Extract(html, pageURL string, mode Mode) (*ExtractResult, error)
}
