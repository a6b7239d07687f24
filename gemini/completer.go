// Package gemini implements berita.Completer on the native Gemini API.
package gemini

import (
	"context"

	"github.com/fwojciec/berita"
	"google.golang.org/genai"
)

// Ensure Completer implements berita.Completer at compile time.
var _ berita.Completer = (*Completer)(nil)

const systemInstruction = "Anda adalah analis media yang membaca berita berbahasa Indonesia. Ikuti format keluaran yang diminta dengan tepat."

// Completer sends prompts to a Gemini model.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a Completer for model. An empty model uses
// berita.DefaultModel.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = berita.DefaultModel
	}
	return &Completer{client: client, model: model}
}

// NewClient creates a Gemini API client for apiKey.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, berita.Errorf(berita.EINVALID, "Gemini API key required")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// Complete returns the model's text answer to prompt.
func (c *Completer) Complete(ctx context.Context, prompt string, opts berita.CompletionOptions) (string, error) {
	if prompt == "" {
		return "", berita.Errorf(berita.EINVALID, "prompt required")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		BuildConfig(opts),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", berita.Errorf(berita.EINTERNAL, "gemini returned nil result")
	}
	text := result.Text()
	if text == "" {
		return "", berita.Errorf(berita.EUNAVAILABLE, "gemini returned an empty answer")
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for a completion.
func BuildConfig(opts berita.CompletionOptions) *genai.GenerateContentConfig {
	temp := opts.Temperature
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Temperature: &temp,
	}
	if opts.JSON {
		config.ResponseMIMEType = "application/json"
	}
	return config
}
