package model

import (
	"errors"
	"time"
)

// ErrMalformedPolicy indicates the policy document could not be parsed or is
// missing fields required for an eligibility decision. The orchestrator must
// not proceed to claim creation when it sees this error.
var ErrMalformedPolicy = errors.New("malformed policy document")

// PolicyWindow holds the coverage window extracted from a policy document.
// Immutable once parsed; used for a single evaluation and discarded.
type PolicyWindow struct {
	PolicyNumber  string    `json:"policy_number"`
	PolicyType    string    `json:"policy_type,omitempty"`
	EffectiveDate time.Time `json:"effective_date"`
	ExpirationDate time.Time `json:"expiration_date"`
}

// ParseTimestamp parses an ISO-8601 timestamp with offset. A trailing "Z"
// is accepted and means a zero offset, matching the upstream policy and
// claim systems which emit both forms.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	// Some systems omit fractional seconds but include millisecond fields
	// elsewhere; RFC3339 already covers both. Fall back to a date-only form.
	return time.Parse("2006-01-02", s)
}
