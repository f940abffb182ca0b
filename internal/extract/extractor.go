// Package extract turns free text into the structured fields the decision
// engine needs, using a generative-text provider.
package extract

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/psellars/fnolgate/internal/llm"
)

// ErrExtractionFailed indicates the model output did not contain the
// required fields. The orchestrator surfaces this as an invalid policy.
var ErrExtractionFailed = errors.New("extraction failed")

var (
	policyNumberPattern = regexp.MustCompile(`"PolicyNumber":\s*"(\d+)"`)
	lossDatePattern     = regexp.MustCompile(`"LossDate":\s*"([\d\-T:\.+Z]+)"`)
)

// Extraction holds the fields pulled from a claim description. LossDate
// stays a string: the eligibility evaluator owns parsing and treats an
// unparsable date as an Invalid outcome, not a crash.
type Extraction struct {
	PolicyNumber string
	LossDate     string
}

// Extractor prompts a provider for policy fields embedded in free text.
type Extractor struct {
	provider   llm.Provider
	maxRetries int
}

// NewExtractor creates an Extractor over the given provider.
func NewExtractor(provider llm.Provider, maxRetries int) *Extractor {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Extractor{provider: provider, maxRetries: maxRetries}
}

// PolicyDetails extracts the policy number and loss date from a cleaned
// claim description. The model is asked for a fixed key/value form and the
// fields are pulled out of its reply by pattern, so surrounding prose or
// formatting in the reply does not matter.
func (e *Extractor) PolicyDetails(ctx context.Context, text string) (*Extraction, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("%w: no provider configured", ErrExtractionFailed)
	}

	prompt := fmt.Sprintf(`From the following text, extract the policy details in text format. Eg: "PolicyNumber": "12312312", "LossDate":"2025-07-22T22:30:00.000Z". Do not return anything else.

%s`, text)

	resp, err := llm.CompleteWithRetry(ctx, e.provider, llm.CompletionRequest{
		Prompt:      prompt,
		Temperature: 0,
	}, e.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	match := policyNumberPattern.FindStringSubmatch(resp.Text)
	if match == nil {
		return nil, fmt.Errorf("%w: no policy number in model output", ErrExtractionFailed)
	}
	extraction := &Extraction{PolicyNumber: match[1]}

	if dateMatch := lossDatePattern.FindStringSubmatch(resp.Text); dateMatch != nil {
		extraction.LossDate = dateMatch[1]
	} else {
		return nil, fmt.Errorf("%w: no loss date in model output", ErrExtractionFailed)
	}

	return extraction, nil
}
