// Package llm provides the model-invocation collaborator: a thin client
// abstraction over LLM providers plus the retry/rate-limit wrapper the
// experiment loop calls once per trial.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is used when a run does not specify a model identifier.
const DefaultModel = "gemini-2.5-flash"

// completionTemperature matches the reference experiments; responses are
// sampled, repetitions measure the resulting variance.
const completionTemperature = 0.7

// Client is an abstraction over LLM providers. The harness treats it as an
// opaque function from prompt and model identifier to response text.
type Client interface {
	// Complete generates a free-text reply for the prompt using the given
	// model identifier.
	Complete(ctx context.Context, prompt, model string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a new LLM client.
func NewClient(ctx context.Context, apiKey string) (Client, error) {
	return NewGeminiClient(ctx, apiKey)
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

// Complete generates a free-text reply for the prompt.
func (c *GeminiClient) Complete(ctx context.Context, prompt, model string) (string, error) {
	if model == "" {
		model = DefaultModel
	}

	gm := c.client.GenerativeModel(model)
	gm.SetTemperature(completionTemperature)

	resp, err := gm.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp)
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
