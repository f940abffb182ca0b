package model

// ClaimRecord is a historical claim as returned by the claim-management
// system. Timestamps stay as strings: individual records may carry
// unparsable dates and the matcher skips those rather than failing the scan.
type ClaimRecord struct {
	ClaimNumber  string     `json:"ClaimNumber"`
	LossDate     string     `json:"LossDate"`
	PolicyType   string     `json:"PolicyType,omitempty"`
	ClaimStatus  string     `json:"ClaimStatus,omitempty"`
	PolicyNumber string     `json:"PolicyNumber,omitempty"`
	Exposures    []Exposure `json:"Exposures,omitempty"`
}

// Exposure is a sub-record of a claim with its own creation timestamp.
type Exposure struct {
	CreateDate string `json:"CreateDate"`
}

// DuplicateMatch identifies the prior claim selected as the duplicate of an
// inbound loss. Computed fresh per evaluation, never persisted.
type DuplicateMatch struct {
	ClaimNumber             string  `json:"claim_number"`
	LossDate                string  `json:"loss_date"`
	CreateDate              string  `json:"create_date"`
	PolicyType              string  `json:"policy_type,omitempty"`
	ClaimStatus             string  `json:"claim_status,omitempty"`
	PolicyNumber            string  `json:"policy_number,omitempty"`
	LossDateDifferenceHours float64 `json:"loss_date_difference_hours"`
}
