package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"codescope/internal/logging"
)

// OllamaClient implements Client for a local Ollama server. Ollama runs
// a single worker, so Provider().Concurrent() is false and callers must
// serialize requests.
type OllamaClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// OllamaConfig holds configuration for the Ollama client.
type OllamaConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// DefaultOllamaConfig returns sensible defaults. Local inference is slow;
// the timeout is deliberately generous.
func DefaultOllamaConfig() OllamaConfig {
	return OllamaConfig{
		BaseURL: "http://localhost:11434",
		Model:   "llama3.1",
		Timeout: 10 * time.Minute,
	}
}

// NewOllamaClient creates an Ollama client with default config.
func NewOllamaClient() *OllamaClient {
	return NewOllamaClientWithConfig(DefaultOllamaConfig())
}

// NewOllamaClientWithConfig creates an Ollama client with custom config.
func NewOllamaClientWithConfig(config OllamaConfig) *OllamaClient {
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:11434"
	}
	if config.Model == "" {
		config.Model = "llama3.1"
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Minute
	}
	return &OllamaClient{
		baseURL:    config.BaseURL,
		model:      config.Model,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Provider identifies this backend class.
func (c *OllamaClient) Provider() Provider { return ProviderOllama }

// Complete sends a prompt and returns the completion.
func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteWithSystem(ctx, "", prompt)
}

// CompleteWithSystem sends a prompt with a system message.
func (c *OllamaClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userPrompt})

	jsonData, err := json.Marshal(map[string]interface{}{
		"model":    c.model,
		"messages": messages,
		"stream":   false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/chat", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &BackendError{Provider: ProviderOllama, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &BackendError{Provider: ProviderOllama, Message: "failed to read response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &BackendError{Provider: ProviderOllama, Status: resp.StatusCode, Message: string(body)}
	}

	logging.APIDebug("ollama completion: %d bytes in", len(body))
	return DecodeContent(body), nil
}
