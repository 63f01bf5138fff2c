package analysis

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"codescope/internal/llm"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

// MockClient is a configurable llm.Client for orchestrator tests. All
// prompts it sees are recorded under a mutex.
type MockClient struct {
	mu       sync.Mutex
	calls    []string
	provider llm.Provider

	// CompleteFunc, when set, decides every response.
	CompleteFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, prompt)
	m.mu.Unlock()
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return "mock response", nil
}

func (m *MockClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return m.Complete(ctx, userPrompt)
}

func (m *MockClient) Provider() llm.Provider {
	if m.provider == "" {
		return llm.ProviderOpenAI
	}
	return m.provider
}

// Calls returns a snapshot of every prompt seen so far.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

type mapReader map[string]string

func (r mapReader) ReadUnit(rel string) (string, error) {
	if code, ok := r[rel]; ok {
		return code, nil
	}
	return "", fmt.Errorf("no artifact at %s", rel)
}
