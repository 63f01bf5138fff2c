package llm

import (
	"context"
	"fmt"
	"os"
	"time"
)

// ClientConfig holds the resolved provider selection and credentials.
type ClientConfig struct {
	Provider    Provider
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// DetectProvider resolves a provider from environment variables.
// Priority: GEMINI_API_KEY > OPENAI_API_KEY > local Ollama (no key needed).
func DetectProvider() *ClientConfig {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return &ClientConfig{Provider: ProviderGemini, APIKey: key}
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return &ClientConfig{Provider: ProviderOpenAI, APIKey: key}
	}
	return &ClientConfig{Provider: ProviderOllama}
}

// NewClient creates the client for a resolved config. The provider is
// selected exactly once here; everything downstream works against the
// Client interface.
func NewClient(ctx context.Context, cfg *ClientConfig) (Client, error) {
	switch cfg.Provider {
	case ProviderGemini:
		gc := DefaultGeminiConfig(cfg.APIKey)
		if cfg.Model != "" {
			gc.Model = cfg.Model
		}
		if cfg.Temperature > 0 {
			gc.Temperature = cfg.Temperature
		}
		if cfg.MaxTokens > 0 {
			gc.MaxTokens = cfg.MaxTokens
		}
		return NewGeminiClientWithConfig(ctx, gc)

	case ProviderOpenAI:
		oc := DefaultOpenAIConfig(cfg.APIKey)
		if cfg.Model != "" {
			oc.Model = cfg.Model
		}
		if cfg.BaseURL != "" {
			oc.BaseURL = cfg.BaseURL
		}
		if cfg.Temperature > 0 {
			oc.Temperature = cfg.Temperature
		}
		if cfg.MaxTokens > 0 {
			oc.MaxTokens = cfg.MaxTokens
		}
		if cfg.Timeout > 0 {
			oc.Timeout = cfg.Timeout
		}
		return NewOpenAIClientWithConfig(oc), nil

	case ProviderOllama:
		lc := DefaultOllamaConfig()
		if cfg.Model != "" {
			lc.Model = cfg.Model
		}
		if cfg.BaseURL != "" {
			lc.BaseURL = cfg.BaseURL
		}
		if cfg.Timeout > 0 {
			lc.Timeout = cfg.Timeout
		}
		return NewOllamaClientWithConfig(lc), nil
	}

	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}
