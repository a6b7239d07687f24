package enrich

import (
	"context"
	"fmt"

	"github.com/fwojciec/berita"
)

// Sentiment values the model is asked to choose from, plus the sentinels.
const (
	SentimentPositive  = "positif"
	SentimentNegative  = "negatif"
	SentimentNeutral   = "netral"
	SentimentUnrelated = "tidak terkait"
	SentimentError     = "error"
	ConfidenceLow      = "rendah"
)

const invalidJSONReasoning = "Respons bukan JSON yang valid."

// Sentiment judges content relative to sentimentContext. A malformed
// answer yields a neutral, low-confidence result; a failed call yields
// sentiment "error" with the cause as reasoning.
func (e *Enricher) Sentiment(ctx context.Context, content, sentimentContext string) *berita.Sentiment {
	text, err := e.complete(ctx, sentimentPrompt(content, sentimentContext), berita.CompletionOptions{
		Temperature: sentimentTemperature,
		JSON:        true,
	})
	if err != nil {
		return &berita.Sentiment{Sentiment: SentimentError, Confidence: ConfidenceLow, Reasoning: errorText(err)}
	}

	var s berita.Sentiment
	if err := decodeJSON(text, &s); err != nil || s.Sentiment == "" {
		return &berita.Sentiment{Sentiment: SentimentNeutral, Confidence: ConfidenceLow, Reasoning: invalidJSONReasoning}
	}
	return &s
}

func sentimentPrompt(content, sentimentContext string) string {
	return fmt.Sprintf(`Analisis sentimen dari artikel berita berikut berdasarkan konteks yang diberikan.

KONTEKS: %s

ARTIKEL:
%s

Berikan analisis sentimen dalam format JSON dengan struktur berikut:
{
    "sentiment": "positif/negatif/netral",
    "confidence": "tinggi/sedang/rendah",
    "reasoning": "penjelasan singkat mengapa sentimen tersebut dipilih berdasarkan konteks"
}

Fokus analisis hanya pada konteks yang diberikan. Jika konteks tidak ditemukan dalam artikel, berikan sentimen "tidak terkait".
Pastikan output HANYA berupa JSON yang valid.`, sentimentContext, truncate(content, sentimentContentLimit))
}
