package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "claim_template.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return path
}

func TestNewSynthesizer_TemplateValidation(t *testing.T) {
	if _, err := NewSynthesizer(nil, filepath.Join(t.TempDir(), "missing.json"), 1); err == nil {
		t.Error("expected error for missing template")
	}
	if _, err := NewSynthesizer(nil, writeTemplate(t, "{broken"), 1); err == nil {
		t.Error("expected error for invalid template JSON")
	}
	if _, err := NewSynthesizer(nil, writeTemplate(t, `{"LossDate": ""}`), 1); err != nil {
		t.Errorf("valid template rejected: %v", err)
	}
}

func TestSynthesize_FencedJSON(t *testing.T) {
	p := &scriptedProvider{replies: []string{
		"```json\n{\"PolicyNumber\": \"42\", \"LossCause\": \"glassbreakage\"}\n```",
	}}
	s, err := NewSynthesizer(p, writeTemplate(t, `{"PolicyNumber": "", "LossCause": ""}`), 1)
	if err != nil {
		t.Fatalf("NewSynthesizer: %v", err)
	}

	payload, err := s.Synthesize(context.Background(), "windshield shattered", "<PolicyPeriod/>")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if payload["LossCause"] != "glassbreakage" {
		t.Errorf("unexpected payload: %+v", payload)
	}

	// The prompt must carry the claim text, policy details and template.
	prompt := p.prompts[0]
	for _, want := range []string{"windshield shattered", "<PolicyPeriod/>", `"PolicyNumber"`} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSynthesize_BareJSONAccepted(t *testing.T) {
	p := &scriptedProvider{replies: []string{`{"ClaimantType": "insured"}`}}
	s, err := NewSynthesizer(p, writeTemplate(t, `{}`), 1)
	if err != nil {
		t.Fatalf("NewSynthesizer: %v", err)
	}

	payload, err := s.Synthesize(context.Background(), "x", "y")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if payload["ClaimantType"] != "insured" {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestSynthesize_NoJSONInReply(t *testing.T) {
	p := &scriptedProvider{replies: []string{"I could not build a claim from this."}}
	s, err := NewSynthesizer(p, writeTemplate(t, `{}`), 1)
	if err != nil {
		t.Fatalf("NewSynthesizer: %v", err)
	}

	if _, err := s.Synthesize(context.Background(), "x", "y"); !errors.Is(err, ErrSynthesisFailed) {
		t.Errorf("expected ErrSynthesisFailed, got %v", err)
	}
}
