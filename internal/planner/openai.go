package planner

import (
	"context"
	"errors"
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"
)

// Model defaults. Groq serves an OpenAI-compatible API, so the stock
// go-openai client works against it by swapping the base URL.
const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"

	temperature = 0.7
	maxTokens   = 4096
)

// OpenAICompleter implements Completer with a JSON-mode chat completion.
type OpenAICompleter struct {
	client *goopenai.Client
	model  string
}

var _ Completer = (*OpenAICompleter)(nil)

// NewOpenAICompleter builds a completer for an OpenAI-compatible endpoint.
// Empty baseURL and model use the Groq defaults.
func NewOpenAICompleter(apiKey, baseURL, model string, httpClient *http.Client) (*OpenAICompleter, error) {
	if apiKey == "" {
		return nil, errors.New("planner: missing LLM API key")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	cfg := goopenai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &OpenAICompleter{client: goopenai.NewClientWithConfig(cfg), model: model}, nil
}

// Complete implements Completer. An answer with no choices or empty content
// is an error.
func (c *OpenAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: system},
			{Role: goopenai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("planner: empty response from model")
	}
	return resp.Choices[0].Message.Content, nil
}
