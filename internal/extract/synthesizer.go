package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/psellars/fnolgate/internal/llm"
)

// ErrSynthesisFailed indicates the model did not produce a usable claim
// payload. Each occurrence counts as one failed submission attempt.
var ErrSynthesisFailed = errors.New("claim synthesis failed")

var jsonFencePattern = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

const synthesisSystem = "You are a professional insurance claim assistant."

const synthesisMasterData = `Master Data (use ONLY these values exactly):

ClaimantType:
- insured
- householdmember
- propertyowner
- customer
- employee
- other

PolicyType:
- BusinessOwners
- BusinessAuto
- CommercialPackage
- CommercialProperty
- farmowners
- GeneralLiability
- HOPHomeowners
- InlandMarine
- PersonalAuto
- travel_per
- PersonalUmbrella
- prof_liability
- WorkersComp
- D and 0

RelationshipToInsured:
- self
- agent
- attorney
- employee
- claimant
- claimantatty
- rentalrep
- repairshop
- other

LossCause:
- animal_bite
- burglary
- earthquake
- explosion
- fire
- glassbreakage
- hail
- hurricane
- vandalism
- mold
- riotandcivil
- snowice
- structfailure
- waterdamage
- wind`

// Synthesizer builds structured claim-creation payloads from a claim
// description, the policy document, and a payload template.
type Synthesizer struct {
	provider   llm.Provider
	template   string
	maxRetries int
}

// NewSynthesizer loads the claim payload template from templatePath and
// returns a Synthesizer over the given provider.
func NewSynthesizer(provider llm.Provider, templatePath string, maxRetries int) (*Synthesizer, error) {
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("read claim template: %w", err)
	}
	// Fail fast on a broken template rather than on the first claim.
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("claim template is not valid JSON: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Synthesizer{
		provider:   provider,
		template:   string(data),
		maxRetries: maxRetries,
	}, nil
}

// Synthesize produces the claim-creation payload. The model fills the
// template using only the claim description and the policy document; its
// reply must carry the payload in a fenced json block.
func (s *Synthesizer) Synthesize(ctx context.Context, claimText, policyDetails string) (map[string]any, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("%w: no provider configured", ErrSynthesisFailed)
	}

	prompt := fmt.Sprintf(`Your job is to extract structured data from the user's claim description and populate a valid claim creation JSON object.

---

%s

---

Instructions:

1. **Extract structured data** only when confidently inferable.
2. **Leave fields blank or omit them entirely** if data is missing or uncertain.
3. For InvolvedVehicles, add only if vehicle info (like VIN or plate) is present.
4. For each InvolvedCoverage, use only coverages listed in the policy details, with their public id.
5. Determine PolicyType, RelationshipToInsured and LossCause from the predefined lists.
6. Date format for LossDate must be ISO 8601 with timezone offset, like "2024-06-19T00:00:00+05:30".
7. If a field is not mentioned in the claim description, try to fill it from the policy details.
8. LossOccured should be a string value, eg "Home"/"At Premises"/"At Work"/"At Street".

---

Output:
Return only a valid, structured JSON object inside a fenced json code block. No explanation text. Do not hallucinate missing details.

Claim Information:
%s

Policy Details:
%s

---

Fill out the below template using only values inferred from the above:
%s`, synthesisMasterData, claimText, policyDetails, s.template)

	resp, err := llm.CompleteWithRetry(ctx, s.provider, llm.CompletionRequest{
		System:      synthesisSystem,
		Prompt:      prompt,
		Temperature: 0,
	}, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesisFailed, err)
	}

	payload, err := extractJSONBlock(resp.Text)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// extractJSONBlock pulls the fenced json payload out of a model reply.
// A bare JSON object without fences is accepted too.
func extractJSONBlock(text string) (map[string]any, error) {
	candidate := text
	if match := jsonFencePattern.FindStringSubmatch(text); match != nil {
		candidate = match[1]
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return nil, fmt.Errorf("%w: no JSON object in model output: %v", ErrSynthesisFailed, err)
	}
	return payload, nil
}
