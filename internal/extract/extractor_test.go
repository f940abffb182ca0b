package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/psellars/fnolgate/internal/llm"
)

// scriptedProvider returns canned completions in order.
type scriptedProvider struct {
	replies []string
	err     error
	calls   int
	prompts []string
}

func (p *scriptedProvider) Name() string                       { return "scripted" }
func (p *scriptedProvider) IsAvailable(_ context.Context) bool { return true }
func (p *scriptedProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.prompts = append(p.prompts, req.Prompt)
	if p.err != nil {
		return nil, p.err
	}
	reply := p.replies[p.calls%len(p.replies)]
	p.calls++
	return &llm.CompletionResponse{Text: reply}, nil
}

func TestPolicyDetails_Success(t *testing.T) {
	p := &scriptedProvider{replies: []string{
		`"PolicyNumber": "5501234567", "LossDate":"2025-07-22T22:30:00.000Z"`,
	}}
	e := NewExtractor(p, 1)

	got, err := e.PolicyDetails(context.Background(), "my car was hit, policy 5501234567, on July 22nd around 10:30pm")
	if err != nil {
		t.Fatalf("PolicyDetails failed: %v", err)
	}
	if got.PolicyNumber != "5501234567" {
		t.Errorf("policy number: got %s", got.PolicyNumber)
	}
	if got.LossDate != "2025-07-22T22:30:00.000Z" {
		t.Errorf("loss date: got %s", got.LossDate)
	}
}

func TestPolicyDetails_OffsetLossDate(t *testing.T) {
	p := &scriptedProvider{replies: []string{
		`Here you go: "PolicyNumber": "42", "LossDate": "2024-06-19T00:00:00+05:30"`,
	}}
	e := NewExtractor(p, 1)

	got, err := e.PolicyDetails(context.Background(), "text")
	if err != nil {
		t.Fatalf("PolicyDetails failed: %v", err)
	}
	if got.LossDate != "2024-06-19T00:00:00+05:30" {
		t.Errorf("loss date with offset: got %s", got.LossDate)
	}
}

func TestPolicyDetails_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"no policy number", `"LossDate": "2025-07-22T22:30:00Z"`},
		{"non-numeric policy number", `"PolicyNumber": "ABC-123", "LossDate": "2025-07-22T22:30:00Z"`},
		{"no loss date", `"PolicyNumber": "42"`},
		{"empty reply", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(&scriptedProvider{replies: []string{tt.reply}}, 1)
			_, err := e.PolicyDetails(context.Background(), "text")
			if !errors.Is(err, ErrExtractionFailed) {
				t.Errorf("expected ErrExtractionFailed, got %v", err)
			}
		})
	}
}

func TestPolicyDetails_NoProvider(t *testing.T) {
	e := NewExtractor(nil, 1)
	if _, err := e.PolicyDetails(context.Background(), "text"); !errors.Is(err, ErrExtractionFailed) {
		t.Errorf("expected ErrExtractionFailed without provider, got %v", err)
	}
}

func TestClassifyIntent_ModelAnswers(t *testing.T) {
	tests := []struct {
		reply string
		want  Intent
	}{
		{`Proceed`, IntentProceed},
		{`"Proceed"`, IntentProceed},
		{`Acknowledge`, IntentAcknowledge},
		{`SystemMessage`, IntentSystemMessage},
	}

	for _, tt := range tests {
		e := NewExtractor(&scriptedProvider{replies: []string{tt.reply}}, 1)
		if got := e.ClassifyIntent(context.Background(), "some body"); got != tt.want {
			t.Errorf("reply %q: got %v, want %v", tt.reply, got, tt.want)
		}
	}
}

func TestClassifyIntent_FallbackSubstring(t *testing.T) {
	// No provider: the substring check decides.
	e := NewExtractor(nil, 1)
	if got := e.ClassifyIntent(context.Background(), "Please PROCEED with my claim"); got != IntentProceed {
		t.Errorf("expected fallback Proceed, got %v", got)
	}
	if got := e.ClassifyIntent(context.Background(), "Thanks for letting me know"); got != IntentAcknowledge {
		t.Errorf("expected fallback Acknowledge, got %v", got)
	}

	// Provider failure also falls back.
	e = NewExtractor(&scriptedProvider{err: errors.New("bad api key")}, 1)
	if got := e.ClassifyIntent(context.Background(), "yes, proceed"); got != IntentProceed {
		t.Errorf("expected fallback on provider error, got %v", got)
	}

	// Off-vocabulary model reply falls back too.
	e = NewExtractor(&scriptedProvider{replies: []string{"The customer wants to continue."}}, 1)
	if got := e.ClassifyIntent(context.Background(), "go ahead please"); got != IntentAcknowledge {
		t.Errorf("expected fallback Acknowledge for off-vocabulary reply, got %v", got)
	}
}
