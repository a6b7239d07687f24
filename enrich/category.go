package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/berita"
)

const categoryErrorPrefix = "Error analisis AI: "

// Categorize picks one category for content. Each entry of categories is
// either "Name" or "Name: description". The model's answer is returned
// even when it names a category outside the list.
func (e *Enricher) Categorize(ctx context.Context, content string, categories []string) string {
	if len(categories) == 0 {
		return berita.NoCategories
	}

	text, err := e.complete(ctx, categoryPrompt(content, categories), berita.CompletionOptions{
		Temperature: categoryTemperature,
		JSON:        true,
	})
	if err != nil {
		return categoryErrorPrefix + errorText(err)
	}

	var answer struct {
		Category *string `json:"category"`
	}
	if err := decodeJSON(text, &answer); err != nil || answer.Category == nil {
		return berita.CategoryParseError
	}
	return strings.TrimSpace(*answer.Category)
}

func categoryPrompt(content string, categories []string) string {
	var lines strings.Builder
	for _, c := range categories {
		name, desc, ok := strings.Cut(c, ":")
		if ok {
			fmt.Fprintf(&lines, "- %s: %s\n", strings.TrimSpace(name), strings.TrimSpace(desc))
		} else {
			fmt.Fprintf(&lines, "- %s\n", strings.TrimSpace(c))
		}
	}

	return fmt.Sprintf(`Analyze the following text (which may be a full article or just a title) and classify it into ONE of the most relevant categories from the list provided. Use the descriptions to help you decide.

CATEGORY LIST:
%s- %s (use this if no other category is a good fit)

TEXT TO ANALYZE:
%s

Your task is to respond with a JSON object containing the single most relevant category name. Do not add any explanation.
The JSON structure must be:
{
    "category": "Nama Kategori"
}`, lines.String(), berita.CategoryFallback, truncate(content, categoryContentLimit))
}
