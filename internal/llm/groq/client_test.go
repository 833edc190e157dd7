package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"ats-analyzer/internal/llm"
)

func TestCompleteSendsModelTemperatureAndMessages(t *testing.T) {
	var mu sync.Mutex
	var lastBody map[string]any
	var lastAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		mu.Lock()
		lastBody = payload
		lastAuth = r.Header.Get("Authorization")
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  the answer  "}}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", "llama-3.3-70b-versatile", server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	got, err := client.Complete(context.Background(), llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "system text"},
			{Role: llm.RoleUser, Content: "user text"},
		},
		Temperature: 0.05,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "the answer" {
		t.Fatalf("expected trimmed content, got %q", got)
	}

	mu.Lock()
	defer mu.Unlock()
	if lastAuth != "Bearer test-key" {
		t.Fatalf("expected bearer auth, got %q", lastAuth)
	}
	if lastBody["model"] != "llama-3.3-70b-versatile" {
		t.Fatalf("unexpected model: %v", lastBody["model"])
	}
	temp, ok := lastBody["temperature"].(float64)
	if !ok || temp < 0.049 || temp > 0.051 {
		t.Fatalf("unexpected temperature: %v", lastBody["temperature"])
	}
	messages, ok := lastBody["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %v", lastBody["messages"])
	}
	first, _ := messages[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "system text" {
		t.Fatalf("unexpected first message: %v", first)
	}
}

func TestCompleteSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"rate_limit_exceeded"}}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", "llama-3.3-70b-versatile", server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.Complete(context.Background(), llm.Request{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "hi"}},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "rate_limit_exceeded") {
		t.Fatalf("expected api error type in message, got %v", err)
	}
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", "llama-3.3-70b-versatile", server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.Complete(context.Background(), llm.Request{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "hi"}},
	})
	if err == nil || !strings.Contains(err.Error(), "missing choices") {
		t.Fatalf("expected missing choices error, got %v", err)
	}
}

func TestNewClientValidatesInputs(t *testing.T) {
	if _, err := NewClient("", "model", "", time.Second); err == nil {
		t.Fatalf("expected error for missing api key")
	}
	if _, err := NewClient("key", "", "", time.Second); err == nil {
		t.Fatalf("expected error for missing model")
	}
	client, err := NewClient("key", "model", "", 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.baseURL != defaultBaseURL {
		t.Fatalf("expected default base url, got %q", client.baseURL)
	}
}
