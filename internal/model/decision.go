package model

// Action is the outcome vocabulary produced by the orchestrator and
// consumed by the request layer.
type Action string

const (
	ActionInvalidPolicy Action = "InvalidPolicy"
	ActionPolicyExpired Action = "PolicyExpired"
	ActionNotEligible   Action = "NotEligible"
	ActionDuplicate     Action = "DuplicateClaim"
	ActionClaimCreated  Action = "ClaimCreated"
	ActionNotRequired   Action = "NotRequired"
	ActionProceed       Action = "ProceedToCreate"
	ActionFailed        Action = "Failed"
)

// Decision is the result of running the decision sequence over one inbound
// claim description.
type Decision struct {
	Action       Action          `json:"action"`
	PolicyNumber string          `json:"policy_number,omitempty"`
	Policy       *PolicyWindow   `json:"policy,omitempty"`
	Duplicate    *DuplicateMatch `json:"duplicate,omitempty"`
}

// IntakeResponse is the JSON envelope returned to the mail gateway.
// HTTPStatus is a transport hint for failed submissions (the last
// attempt's upstream status); zero means 200.
type IntakeResponse struct {
	ClaimNumber  string          `json:"claimNumber,omitempty"`
	PolicyNumber string          `json:"policyNumber,omitempty"`
	LossDate     string          `json:"lossDate,omitempty"`
	ClaimStatus  string          `json:"claimStatus,omitempty"`
	Message      string          `json:"message"`
	Action       Action          `json:"action"`
	Duplicate    *DuplicateMatch `json:"duplicate,omitempty"`
	HTTPStatus   int             `json:"-"`
}
