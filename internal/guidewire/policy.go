package guidewire

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/psellars/fnolgate/internal/model"
)

const latestDetailsPath = "/pc/rest/policy/v1/latestDetailsBasedOnAccOrPocNo"

// PolicyClient retrieves policy documents from the policy-management system.
type PolicyClient struct {
	*client
}

// NewPolicyClient creates a client for the policy-management REST API.
func NewPolicyClient(cfg model.PolicyAPIConfig) *PolicyClient {
	return &PolicyClient{
		client: newClient(strings.TrimSuffix(cfg.BaseURL, "/"), cfg.Username, cfg.Password, cfg.Timeout, cfg.RequestsPerSecond),
	}
}

// LatestDetails returns the raw policy document for a policy number. The
// upstream endpoint takes the bare number as a CRLF-terminated text/plain
// body and answers with XML, sometimes wrapped in a JSON array.
func (c *PolicyClient) LatestDetails(ctx context.Context, policyNumber string) (string, error) {
	url := c.baseURL + latestDetailsPath
	payload := policyNumber + "\r\n"

	status, body, err := c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "text/plain")
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("policy lookup: %w", err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("policy lookup: unexpected status %d: %s", status, preview(body))
	}

	return string(body), nil
}

// preview truncates an upstream payload for error messages.
func preview(body []byte) string {
	s := string(body)
	if len(s) > 500 {
		return s[:500] + "..."
	}
	return s
}
