// Package openai implements berita.Completer against any OpenAI-compatible
// chat completions endpoint, such as a Gemini proxy.
package openai

import (
	"context"
	"net/http"
	"strings"

	"github.com/fwojciec/berita"
	openai "github.com/sashabaranov/go-openai"
)

// Ensure Completer implements berita.Completer at compile time.
var _ berita.Completer = (*Completer)(nil)

// Completer sends prompts as single user messages to a chat model.
type Completer struct {
	client *openai.Client
	model  string
}

// Option configures a Completer.
type Option func(*openai.ClientConfig)

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *openai.ClientConfig) {
		cfg.HTTPClient = c
	}
}

// NewCompleter creates a Completer talking to baseURL with apiKey. An
// empty model uses berita.DefaultModel.
func NewCompleter(apiKey, baseURL, model string, opts ...Option) (*Completer, error) {
	if apiKey == "" {
		return nil, berita.Errorf(berita.EINVALID, "API key required")
	}
	if baseURL == "" {
		return nil, berita.Errorf(berita.EINVALID, "base URL required")
	}
	if model == "" {
		model = berita.DefaultModel
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Completer{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

// Complete returns the content of the first choice.
func (c *Completer) Complete(ctx context.Context, prompt string, opts berita.CompletionOptions) (string, error) {
	if prompt == "" {
		return "", berita.Errorf(berita.EINVALID, "prompt required")
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: opts.Temperature,
	}
	if opts.JSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", berita.Errorf(berita.EUNAVAILABLE, "model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
