package berita

import "context"

// DefaultModel is the language model used for enrichment unless configured.
const DefaultModel = "gemini-2.5-flash"

// CompletionOptions tunes a single completion request.
type CompletionOptions struct {
	Temperature float32
	// JSON asks the model to answer with a single JSON object.
	JSON bool
}

// Completer sends a prompt to a language model and returns its text answer.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
}

// Sentiment is a model's judgement of an article relative to a context.
type Sentiment struct {
	Sentiment  string `json:"sentiment"`
	Confidence string `json:"confidence"`
	Reasoning  string `json:"reasoning"`
}

// SummaryStyle selects the kind of summary requested.
type SummaryStyle string

// Summary styles.
const (
	SummaryConcise SummaryStyle = "Ringkas"
	SummaryDetail  SummaryStyle = "Detail"
	SummaryBullets SummaryStyle = "Poin-poin Utama"
	SummaryCustom  SummaryStyle = "Custom"
)

// SummaryOptions configures a summary request. Zero values fall back to a
// concise summary of 150 words in Bahasa Indonesia.
type SummaryOptions struct {
	Style       SummaryStyle
	MaxWords    int
	Language    string
	Focus       string
	Instruction string
}

// Summary is a generated article summary.
type Summary struct {
	Summary   string `json:"summary"`
	WordCount int    `json:"word_count"`
}

// Enrichment holds the optional analyses attached to an article.
type Enrichment struct {
	Journalist string     `json:"journalist"`
	Sentiment  *Sentiment `json:"sentiment,omitempty"`
	Summary    *Summary   `json:"summary,omitempty"`
	Category   string     `json:"category,omitempty"`
}

// Sentinel values reported when an analysis cannot be produced.
const (
	JournalistNotFound = "Tidak ditemukan"
	NoCategories       = "Tidak ada kategori"
	CategoryParseError = "Gagal parsing JSON"
	CategoryFallback   = "Lain-lain"
)
