// Package llm presents one contract over language-model backends with
// divergent response shapes. Providers are selected once at startup and
// injected; call sites never branch on the provider.
package llm

import (
	"context"
	"time"
)

// Client is the single backend contract the rest of the system sees.
type Client interface {
	// Complete sends a bare prompt and returns the completion text.
	Complete(ctx context.Context, prompt string) (string, error)
	// CompleteWithSystem sends a system prompt alongside the user prompt.
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// Provider identifies the backend class for policy decisions
	// (concurrency, timeouts).
	Provider() Provider
}

// Provider represents an LLM backend class.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
)

// Concurrent reports whether the backend class tolerates concurrent
// in-flight calls. Local single-worker backends must be called one at a
// time with spacing between requests.
func (p Provider) Concurrent() bool {
	switch p {
	case ProviderOllama:
		return false
	}
	return true
}

// Options carries per-call generation settings shared by all providers.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// DefaultOptions returns conservative generation settings for analysis
// work: low temperature, generous output room.
func DefaultOptions() Options {
	return Options{
		Temperature: 0.2,
		MaxTokens:   4096,
		Timeout:     120 * time.Second,
	}
}
