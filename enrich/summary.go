package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/berita"
)

const (
	defaultSummaryWords    = 150
	defaultSummaryLanguage = "Bahasa Indonesia"
	summaryFailurePrefix   = "Gagal membuat ringkasan: "
)

// Summarize asks for a plain-text summary. WordCount is counted locally on
// the answer. A failed call yields the failure text and a zero count.
func (e *Enricher) Summarize(ctx context.Context, content string, opts berita.SummaryOptions) *berita.Summary {
	text, err := e.complete(ctx, summaryPrompt(content, opts), berita.CompletionOptions{
		Temperature: summaryTemperature,
	})
	if err != nil {
		return &berita.Summary{Summary: summaryFailurePrefix + errorText(err)}
	}
	text = strings.TrimSpace(text)
	return &berita.Summary{Summary: text, WordCount: len(strings.Fields(text))}
}

func summaryPrompt(content string, opts berita.SummaryOptions) string {
	words := opts.MaxWords
	if words <= 0 {
		words = defaultSummaryWords
	}
	language := opts.Language
	if language == "" {
		language = defaultSummaryLanguage
	}

	var langInstruction string
	switch language {
	case "English":
		langInstruction = "Respond in English."
	case "Bahasa Indonesia":
		langInstruction = "Respond in Bahasa Indonesia."
	default:
		langInstruction = "Use the same language as the original article."
	}

	var styleInstruction string
	switch opts.Style {
	case berita.SummaryDetail:
		styleInstruction = fmt.Sprintf("Create a detailed summary in approximately %d words that includes important details and context.", words)
	case berita.SummaryBullets:
		styleInstruction = fmt.Sprintf("Create a bullet-point summary with the main points, keeping it under %d words total.", words)
	case berita.SummaryCustom:
		styleInstruction = opts.Instruction
		if styleInstruction == "" {
			styleInstruction = fmt.Sprintf("Create a summary in approximately %d words.", words)
		}
	default:
		styleInstruction = fmt.Sprintf("Create a concise summary in approximately %d words that captures the main points.", words)
	}

	var sb strings.Builder
	sb.WriteString("Summarize the following article according to these requirements:\n\n")
	sb.WriteString("REQUIREMENTS:\n")
	fmt.Fprintf(&sb, "- %s\n", styleInstruction)
	fmt.Fprintf(&sb, "- %s\n", langInstruction)
	fmt.Fprintf(&sb, "- Maximum %d words\n", words)
	if opts.Focus != "" {
		fmt.Fprintf(&sb, "\nFocus specifically on: %s\n", opts.Focus)
	}
	fmt.Fprintf(&sb, "\nARTICLE:\n%s\n\n", truncate(content, summaryContentLimit))
	sb.WriteString("Please provide only the summary text without any additional formatting or explanations.")
	return sb.String()
}
