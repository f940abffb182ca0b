package guidewire

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/psellars/fnolgate/internal/model"
)

const (
	claimDetailsPath = "/cc/rest/claimdetails/v1/getClaimDetails"
	createFNOLPath   = "/cc/rest/fnol/v1/createFNOL"
)

// ErrSubmissionFailed indicates the claim-management system rejected a
// claim-creation call.
var ErrSubmissionFailed = errors.New("claim submission failed")

// ClaimClient talks to the claim-management system: claim history lookups
// and first-notice-of-loss submission.
type ClaimClient struct {
	*client
}

// NewClaimClient creates a client for the claim-management REST API.
func NewClaimClient(cfg model.ClaimAPIConfig) *ClaimClient {
	return &ClaimClient{
		client: newClient(strings.TrimSuffix(cfg.BaseURL, "/"), cfg.Username, cfg.Password, cfg.Timeout, cfg.RequestsPerSecond),
	}
}

// History returns all prior claims recorded against a policy number.
func (c *ClaimClient) History(ctx context.Context, policyNumber string) ([]model.ClaimRecord, error) {
	url := c.baseURL + claimDetailsPath
	payload, err := json.Marshal(map[string]string{"PolicyNumber": policyNumber})
	if err != nil {
		return nil, fmt.Errorf("claim history: marshal request: %w", err)
	}

	status, body, err := c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("claim history: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("claim history: unexpected status %d: %s", status, preview(body))
	}

	var claims []model.ClaimRecord
	if err := json.Unmarshal(body, &claims); err != nil {
		return nil, fmt.Errorf("claim history: decode response: %w\nResponse preview: %s", err, preview(body))
	}
	return claims, nil
}

// SubmitResult is the outcome of one claim-creation attempt.
type SubmitResult struct {
	ClaimNumber string
	StatusCode  int
}

// Submit posts a claim-creation payload. A non-2xx response returns
// ErrSubmissionFailed along with the status code so the caller can report
// the last attempt's status after its retry budget runs out.
func (c *ClaimClient) Submit(ctx context.Context, payload map[string]any) (*SubmitResult, error) {
	url := c.baseURL + createFNOLPath
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("submit claim: marshal payload: %w", err)
	}

	status, respBody, err := c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("submit claim: %w", err)
	}

	if status != http.StatusOK && status != http.StatusCreated {
		return &SubmitResult{StatusCode: status},
			fmt.Errorf("%w: status %d: %s", ErrSubmissionFailed, status, preview(respBody))
	}

	var created struct {
		ClaimNumber string `json:"claimNumber"`
	}
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, fmt.Errorf("submit claim: decode response: %w", err)
	}

	return &SubmitResult{
		ClaimNumber: created.ClaimNumber,
		StatusCode:  status,
	}, nil
}
