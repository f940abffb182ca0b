package llm

import (
	"context"
	"strings"
	"time"
)

// sleepFunc is the sleep function used between retries (injectable for tests)
var sleepFunc = time.Sleep

// CompleteWithRetry retries transient provider failures with exponential
// backoff. Non-transient errors return immediately.
func CompleteWithRetry(ctx context.Context, p Provider, req CompletionRequest, maxRetries int) (*CompletionResponse, error) {
	if maxRetries <= 0 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := p.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return nil, err
		}
		if attempt < maxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			sleepFunc(backoff)
		}
	}
	return nil, lastErr
}

// isRetryableError checks error strings for transient failures
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if err == context.Canceled || err == context.DeadlineExceeded {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "503") ||
		strings.Contains(s, "unavailable") ||
		strings.Contains(s, "overloaded") ||
		strings.Contains(s, "429") ||
		strings.Contains(s, "rate limit") ||
		strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}
