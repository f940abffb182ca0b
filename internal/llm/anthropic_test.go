package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnthropicProvider_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("Expected path /v1/messages, got %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("Expected x-api-key test-key, got %s", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("Expected anthropic-version header")
		}

		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("Unexpected messages: %+v", req.Messages)
		}

		resp := anthropicResponse{
			ID:    "msg_123",
			Type:  "message",
			Role:  "assistant",
			Model: "claude-3-5-sonnet-20241022",
		}
		resp.Content = []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{
			{Type: "text", Text: "Proceed"},
		}
		resp.Usage.InputTokens = 50
		resp.Usage.OutputTokens = 5
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Complete(context.Background(), CompletionRequest{
		Prompt: "Classify the intent of this email.",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if resp.Text != "Proceed" {
		t.Errorf("Unexpected text: %s", resp.Text)
	}
	if resp.TokensUsed != 55 {
		t.Errorf("Expected 55 tokens, got %d", resp.TokensUsed)
	}
}

func TestAnthropicProvider_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(529)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`))
	}))
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Complete(context.Background(), CompletionRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("Expected error for overloaded response")
	}
	if !isRetryableError(err) {
		t.Errorf("overloaded should be classified as retryable, got: %v", err)
	}
}

func TestNewAnthropicProvider_RequiresKey(t *testing.T) {
	if _, err := NewAnthropicProvider(Config{}); err == nil {
		t.Error("Expected error when API key is missing")
	}
}
