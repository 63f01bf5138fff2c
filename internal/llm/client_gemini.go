package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"codescope/internal/logging"
)

// GeminiClient implements Client for the Google Gemini API via the
// official genai SDK.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float64
	maxTokens   int
}

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// DefaultGeminiConfig returns sensible defaults.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	opts := DefaultOptions()
	return GeminiConfig{
		APIKey:      apiKey,
		Model:       "gemini-2.0-flash",
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
}

// NewGeminiClient creates a Gemini client with default config.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	return NewGeminiClientWithConfig(ctx, DefaultGeminiConfig(apiKey))
}

// NewGeminiClientWithConfig creates a Gemini client with custom config.
func NewGeminiClientWithConfig(ctx context.Context, config GeminiConfig) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, &BackendError{Provider: ProviderGemini, Message: "API key is required"}
	}
	model := strings.TrimSpace(config.Model)
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: config.APIKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultOptions().MaxTokens
	}
	return &GeminiClient{
		client:      client,
		model:       model,
		temperature: config.Temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Provider identifies this backend class.
func (c *GeminiClient) Provider() Provider { return ProviderGemini }

// Complete sends a prompt and returns the completion.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteWithSystem(ctx, "", prompt)
}

// CompleteWithSystem sends a prompt with a system instruction.
func (c *GeminiClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(c.temperature)),
		MaxOutputTokens: int32(c.maxTokens),
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(userPrompt), cfg)
	if err != nil {
		return "", &BackendError{Provider: ProviderGemini, Message: "generate content failed", Err: err}
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		// Blocked or empty candidates; hand the sentinel to the caller's
		// fallback logic instead of failing.
		logging.APIDebug("gemini returned no text candidates")
		return UnexpectedFormat, nil
	}
	return text, nil
}
