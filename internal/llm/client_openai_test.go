package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(url string) *OpenAIClient {
	cfg := DefaultOpenAIConfig("test-key")
	cfg.BaseURL = url
	cfg.Timeout = 5 * time.Second
	return NewOpenAIClientWithConfig(cfg)
}

func TestOpenAICompleteHappyPath(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"choices":[{"message":{"content":"the answer"}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	out, err := c.CompleteWithSystem(context.Background(), "be terse", "what is it")
	if err != nil {
		t.Fatalf("CompleteWithSystem: %v", err)
	}
	if out != "the answer" {
		t.Errorf("got %q", out)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Errorf("unexpected messages %+v", gotReq.Messages)
	}
}

func TestOpenAIServerErrorIsBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error")
	}
	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected BackendError, got %T: %v", err, err)
	}
	if be.Status != http.StatusInternalServerError {
		t.Errorf("status = %d", be.Status)
	}
}

func TestOpenAIRateLimitRetries(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"recovered"}}]}`))
	}))
	defer srv.Close()

	out, err := newTestClient(srv.URL).Complete(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "recovered" || calls != 2 {
		t.Errorf("out=%q calls=%d", out, calls)
	}
}

func TestOpenAIMissingKey(t *testing.T) {
	c := NewOpenAIClient("")
	if _, err := c.Complete(context.Background(), "hi"); !IsBackendError(err) {
		t.Errorf("expected BackendError for missing key, got %v", err)
	}
}

func TestOpenAIAPIErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), "hi")
	if !IsBackendError(err) {
		t.Fatalf("expected BackendError, got %v", err)
	}
}

func TestOpenAIUnexpectedShapeYieldsSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"surprise": true}`))
	}))
	defer srv.Close()

	out, err := newTestClient(srv.URL).Complete(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected shape must not error: %v", err)
	}
	if out != UnexpectedFormat {
		t.Errorf("got %q, want sentinel", out)
	}
}
