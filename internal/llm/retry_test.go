package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

// flakyProvider fails a fixed number of times before succeeding.
type flakyProvider struct {
	failures int
	err      error
	calls    int
}

func (p *flakyProvider) Name() string                        { return "flaky" }
func (p *flakyProvider) IsAvailable(_ context.Context) bool  { return true }
func (p *flakyProvider) Complete(_ context.Context, _ CompletionRequest) (*CompletionResponse, error) {
	p.calls++
	if p.calls <= p.failures {
		return nil, p.err
	}
	return &CompletionResponse{Text: "ok"}, nil
}

func TestCompleteWithRetry_TransientFailureRecovers(t *testing.T) {
	var slept []time.Duration
	sleepFunc = func(d time.Duration) { slept = append(slept, d) }
	defer func() { sleepFunc = time.Sleep }()

	p := &flakyProvider{failures: 2, err: errors.New("API error (503): UNAVAILABLE")}

	resp, err := CompleteWithRetry(context.Background(), p, CompletionRequest{Prompt: "x"}, 3)
	if err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if resp.Text != "ok" {
		t.Errorf("unexpected text: %s", resp.Text)
	}
	if p.calls != 3 {
		t.Errorf("expected 3 calls, got %d", p.calls)
	}
	// Exponential backoff: 1s then 2s.
	if len(slept) != 2 || slept[0] != time.Second || slept[1] != 2*time.Second {
		t.Errorf("unexpected backoff schedule: %v", slept)
	}
}

func TestCompleteWithRetry_NonTransientFailsFast(t *testing.T) {
	sleepFunc = func(time.Duration) { t.Error("must not sleep on non-transient errors") }
	defer func() { sleepFunc = time.Sleep }()

	p := &flakyProvider{failures: 10, err: errors.New("API error (401): invalid api key")}

	_, err := CompleteWithRetry(context.Background(), p, CompletionRequest{Prompt: "x"}, 3)
	if err == nil {
		t.Fatal("expected error")
	}
	if p.calls != 1 {
		t.Errorf("expected a single call, got %d", p.calls)
	}
}

func TestCompleteWithRetry_ExhaustsRetries(t *testing.T) {
	sleepFunc = func(time.Duration) {}
	defer func() { sleepFunc = time.Sleep }()

	p := &flakyProvider{failures: 10, err: errors.New("request timeout")}

	_, err := CompleteWithRetry(context.Background(), p, CompletionRequest{Prompt: "x"}, 3)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if p.calls != 3 {
		t.Errorf("expected 3 calls, got %d", p.calls)
	}
}

func TestNewProvider_Factory(t *testing.T) {
	if p, err := NewProvider(Config{}); err != nil || p != nil {
		t.Errorf("empty provider must disable LLM, got %v/%v", p, err)
	}
	if _, err := NewProvider(Config{Provider: "gemini-local"}); err == nil {
		t.Error("unknown provider must error")
	}
	p, err := NewProvider(Config{Provider: "ollama"})
	if err != nil || p == nil {
		t.Errorf("ollama provider should construct without key, got %v/%v", p, err)
	}
	if p.Name() != "ollama" {
		t.Errorf("unexpected provider name %s", p.Name())
	}
}
