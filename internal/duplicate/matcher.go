// Package duplicate finds a prior claim that matches an inbound loss within
// a tolerance window.
package duplicate

import (
	"math"
	"time"

	"github.com/psellars/fnolgate/internal/model"
)

// DefaultToleranceHours is the loss-date window within which a prior claim
// counts as a duplicate candidate.
const DefaultToleranceHours = 24

// Find scans the claim history for duplicates of the target loss date.
//
// A claim is a candidate when its own loss date differs from the target by
// strictly less than toleranceHours. Records with a missing or unparsable
// loss date are skipped, never an error. Among all candidates the winner is
// the claim/exposure pair with the globally latest exposure creation
// timestamp - recency of creation decides, not closeness of the loss dates.
// Returns nil when no candidate carries any parseable exposure create date.
func Find(claims []model.ClaimRecord, targetLoss time.Time, toleranceHours float64) *model.DuplicateMatch {
	if toleranceHours <= 0 {
		toleranceHours = DefaultToleranceHours
	}

	var (
		match        *model.DuplicateMatch
		latestCreate time.Time
	)

	for _, claim := range claims {
		if claim.LossDate == "" {
			continue
		}
		lossDate, err := model.ParseTimestamp(claim.LossDate)
		if err != nil {
			continue
		}

		diffHours := math.Abs(lossDate.Sub(targetLoss).Hours())
		if diffHours >= toleranceHours {
			continue
		}

		for _, exposure := range claim.Exposures {
			if exposure.CreateDate == "" {
				continue
			}
			created, err := model.ParseTimestamp(exposure.CreateDate)
			if err != nil {
				continue
			}
			if match == nil || created.After(latestCreate) {
				latestCreate = created
				match = &model.DuplicateMatch{
					ClaimNumber:             claim.ClaimNumber,
					LossDate:                claim.LossDate,
					CreateDate:              exposure.CreateDate,
					PolicyType:              claim.PolicyType,
					ClaimStatus:             claim.ClaimStatus,
					PolicyNumber:            claim.PolicyNumber,
					LossDateDifferenceHours: round2(diffHours),
				}
			}
		}
	}

	return match
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
