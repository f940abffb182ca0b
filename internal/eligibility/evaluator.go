// Package eligibility decides whether a loss may produce a claim given the
// policy's coverage window and the instant of submission.
package eligibility

import "time"

// GracePeriod is how long after expiration a late claim may still be
// honored, provided the loss itself occurred during coverage.
const GracePeriod = 180 * 24 * time.Hour

// Outcome is the result of a coverage-window evaluation.
type Outcome string

const (
	// OutcomeInvalid: the loss date is in the future, or falls outside the
	// coverage window. Never proceeds to claim creation.
	OutcomeInvalid Outcome = "Invalid"
	// OutcomeValid: submitted while the policy is active and the loss
	// occurred during coverage.
	OutcomeValid Outcome = "Valid"
	// OutcomeEligible: submitted after expiration but within the grace
	// period, for a loss that occurred during coverage.
	OutcomeEligible Outcome = "Eligible"
	// OutcomeNotEligible: submitted after the grace period elapsed, even
	// though the loss occurred during coverage.
	OutcomeNotEligible Outcome = "NotEligible"
)

// Eligible reports whether the outcome permits claim creation.
func (o Outcome) Eligible() bool {
	return o == OutcomeValid || o == OutcomeEligible
}

// Evaluate runs the coverage-window decision. The branch order matters:
// each later branch assumes the earlier conditions were false.
//
//  1. A loss reported before it occurred is Invalid regardless of the window.
//  2. Submission during the coverage period: Valid if the loss is inside
//     the window, otherwise Invalid.
//  3. Submission after expiration: Eligible within the grace period,
//     NotEligible past it - in both cases only when the loss was inside the
//     window, otherwise Invalid.
func Evaluate(effective, expiration, loss, submission time.Time) Outcome {
	if loss.After(submission) {
		return OutcomeInvalid
	}

	lossCovered := within(loss, effective, expiration)

	if within(submission, effective, expiration) {
		if lossCovered {
			return OutcomeValid
		}
		return OutcomeInvalid
	}

	graceEnd := expiration.Add(GracePeriod)
	if !submission.After(graceEnd) {
		if lossCovered {
			return OutcomeEligible
		}
		return OutcomeInvalid
	}

	if lossCovered {
		return OutcomeNotEligible
	}
	return OutcomeInvalid
}

// within reports whether t falls in the inclusive interval [from, to].
func within(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
