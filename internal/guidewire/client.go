// Package guidewire holds REST clients for the policy-management and
// claim-management systems.
package guidewire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const clientMaxRetries = 3

// clientSleepFunc is the sleep function used between retries (injectable for tests)
var clientSleepFunc = time.Sleep

// client is the shared HTTP plumbing: basic auth, a per-endpoint rate
// limiter, and retry with exponential backoff on transient failures.
type client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func newClient(baseURL, username, password string, timeout time.Duration, requestsPerSecond float64) *client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}
	return &client{
		baseURL:  baseURL,
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 5),
	}
}

// do executes the request built by build, retrying transient failures. The
// body is read fully before status handling so error messages carry the
// upstream payload.
func (c *client) do(ctx context.Context, build func() (*http.Request, error)) (int, []byte, error) {
	var (
		status  int
		body    []byte
		lastErr error
	)

	for attempt := 0; attempt < clientMaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, err
		}

		req, err := build()
		if err != nil {
			return 0, nil, fmt.Errorf("create request: %w", err)
		}
		req.SetBasicAuth(c.username, c.password)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("execute request: %w", err)
			status, body = 0, nil
		} else {
			body, err = io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if err != nil {
				return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
			}
			status = resp.StatusCode
			lastErr = nil
			if !retryableStatus(status) {
				return status, body, nil
			}
		}

		if attempt < clientMaxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			clientSleepFunc(backoff)
		}
	}

	if lastErr != nil {
		return 0, nil, lastErr
	}
	return status, body, nil
}

// retryableStatus reports statuses that indicate transient upstream trouble.
func retryableStatus(status int) bool {
	if status >= 500 && status < 600 {
		return true
	}
	return status == http.StatusTooManyRequests
}
