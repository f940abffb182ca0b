package extract

import (
	"context"
	"strings"

	"github.com/psellars/fnolgate/internal/llm"
)

// Intent classifies a follow-up email from the sender.
type Intent string

const (
	IntentProceed       Intent = "Proceed"
	IntentAcknowledge   Intent = "Acknowledge"
	IntentSystemMessage Intent = "SystemMessage"
)

const intentPrompt = `You are an insurance claim email classification assistant.
You will be given the body of an email. Your task is to determine the intent **only if the email is from the customer** in response to a claim-related communication.

## Classification Rules:
1. Ignore and return "SystemMessage" if the email is clearly from the company/system
   (e.g., claim registration confirmation, automated status updates, disclaimers) and not from the customer.
2. If the email is from the customer:
   - Return "Proceed" if the customer is explicitly asking to move forward with the claim process
     or confirming they want it processed.
       Examples: "Please proceed", "Yes, go ahead", "I want to file this claim",
       "Continue with the process", "Proceed with my claim", "Please start the process".
   - Return "Acknowledge" if the customer is simply thanking, acknowledging receipt,
     or expressing appreciation without requesting further action.
       Examples: "Thank you", "Got it", "I appreciate your help", "Noted", "Thanks for letting me know".

## Few-Shot Examples:
Email: "Please proceed with my claim, I agree with your assessment."
Output: "Proceed"

Email: "Thanks for letting me know about the duplicate claim."
Output: "Acknowledge"

Email: "Claim Number: 000-00-004665 has been successfully registered."
Output: "SystemMessage"

Email: "Yes, go ahead and file it."
Output: "Proceed"

## Output format:
Return only one of these strings exactly:
- "SystemMessage"
- "Proceed"
- "Acknowledge"

## Email Body:
`

// ClassifyIntent decides whether a follow-up email asks to proceed. When no
// provider is configured, or the model returns something outside the closed
// set, it falls back to a plain substring check so follow-ups still work
// with the LLM disabled.
func (e *Extractor) ClassifyIntent(ctx context.Context, body string) Intent {
	fallback := func() Intent {
		if strings.Contains(strings.ToLower(body), "proceed") {
			return IntentProceed
		}
		return IntentAcknowledge
	}

	if e.provider == nil {
		return fallback()
	}

	resp, err := llm.CompleteWithRetry(ctx, e.provider, llm.CompletionRequest{
		Prompt:      intentPrompt + body,
		Temperature: 0,
	}, e.maxRetries)
	if err != nil {
		return fallback()
	}

	switch Intent(strings.Trim(strings.TrimSpace(resp.Text), `"`)) {
	case IntentProceed:
		return IntentProceed
	case IntentAcknowledge:
		return IntentAcknowledge
	case IntentSystemMessage:
		return IntentSystemMessage
	default:
		return fallback()
	}
}
