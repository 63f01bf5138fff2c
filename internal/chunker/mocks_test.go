package chunker

import (
	"context"
	"sync"

	"codescope/internal/llm"
)

// MockClient implements llm.Client for testing. It records every call
// and delegates to CompleteWithSystemFunc when set.
type MockClient struct {
	mu                     sync.Mutex
	CompleteWithSystemFunc func(ctx context.Context, sys, user string) (string, error)

	Calls []MockCall
}

type MockCall struct {
	System string
	User   string
}

func (m *MockClient) record(sys, user string) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{System: sys, User: user})
	m.mu.Unlock()
}

func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	return m.CompleteWithSystem(ctx, "", prompt)
}

func (m *MockClient) CompleteWithSystem(ctx context.Context, sys, user string) (string, error) {
	m.record(sys, user)
	if m.CompleteWithSystemFunc != nil {
		return m.CompleteWithSystemFunc(ctx, sys, user)
	}
	return "mock summary", nil
}

func (m *MockClient) Provider() llm.Provider { return llm.ProviderOpenAI }
