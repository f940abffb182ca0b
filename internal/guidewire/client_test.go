package guidewire

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/psellars/fnolgate/internal/model"
)

func noSleep(t *testing.T) {
	t.Helper()
	clientSleepFunc = func(time.Duration) {}
	t.Cleanup(func() { clientSleepFunc = time.Sleep })
}

func TestPolicyClient_LatestDetails(t *testing.T) {
	noSleep(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != latestDetailsPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "text/plain" {
			t.Errorf("expected text/plain, got %s", ct)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "su" || pass != "gw" {
			t.Error("expected basic auth su/gw")
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "5501234567\r\n" {
			t.Errorf("expected CRLF-terminated policy number, got %q", string(body))
		}
		_, _ = w.Write([]byte("<PolicyPeriod><PolicyNumber>5501234567</PolicyNumber></PolicyPeriod>"))
	}))
	defer server.Close()

	c := NewPolicyClient(model.PolicyAPIConfig{
		BaseURL:  server.URL,
		Username: "su",
		Password: "gw",
		Timeout:  5 * time.Second,
	})

	doc, err := c.LatestDetails(context.Background(), "5501234567")
	if err != nil {
		t.Fatalf("LatestDetails failed: %v", err)
	}
	if doc != "<PolicyPeriod><PolicyNumber>5501234567</PolicyNumber></PolicyPeriod>" {
		t.Errorf("unexpected document: %s", doc)
	}
}

func TestPolicyClient_NotFound(t *testing.T) {
	noSleep(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewPolicyClient(model.PolicyAPIConfig{BaseURL: server.URL, Timeout: 5 * time.Second})
	if _, err := c.LatestDetails(context.Background(), "42"); err == nil {
		t.Error("expected error for 404")
	}
}

func TestPolicyClient_RetriesServerErrors(t *testing.T) {
	noSleep(t)

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("<PolicyPeriod/>"))
	}))
	defer server.Close()

	c := NewPolicyClient(model.PolicyAPIConfig{BaseURL: server.URL, Timeout: 5 * time.Second})

	doc, err := c.LatestDetails(context.Background(), "42")
	if err != nil {
		t.Fatalf("expected recovery after retries, got %v", err)
	}
	if doc != "<PolicyPeriod/>" {
		t.Errorf("unexpected document: %s", doc)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestClaimClient_History(t *testing.T) {
	noSleep(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != claimDetailsPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["PolicyNumber"] != "42" {
			t.Errorf("expected PolicyNumber 42, got %s", req["PolicyNumber"])
		}
		_ = json.NewEncoder(w).Encode([]model.ClaimRecord{
			{
				ClaimNumber: "CLM-1",
				LossDate:    "2025-06-15T10:00:00Z",
				ClaimStatus: "open",
				Exposures:   []model.Exposure{{CreateDate: "2025-06-16T00:00:00Z"}},
			},
		})
	}))
	defer server.Close()

	c := NewClaimClient(model.ClaimAPIConfig{BaseURL: server.URL, Timeout: 5 * time.Second})

	claims, err := c.History(context.Background(), "42")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(claims) != 1 || claims[0].ClaimNumber != "CLM-1" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if len(claims[0].Exposures) != 1 {
		t.Errorf("expected one exposure, got %+v", claims[0].Exposures)
	}
}

func TestClaimClient_History_NonListResponse(t *testing.T) {
	noSleep(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message": "no claims found"}`))
	}))
	defer server.Close()

	c := NewClaimClient(model.ClaimAPIConfig{BaseURL: server.URL, Timeout: 5 * time.Second})
	if _, err := c.History(context.Background(), "42"); err == nil {
		t.Error("expected decode error for non-list response")
	}
}

func TestClaimClient_Submit_Created(t *testing.T) {
	noSleep(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != createFNOLPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload["PolicyNumber"] != "42" {
			t.Errorf("unexpected payload: %+v", payload)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"claimNumber": "000-00-004665"}`))
	}))
	defer server.Close()

	c := NewClaimClient(model.ClaimAPIConfig{BaseURL: server.URL, Timeout: 5 * time.Second})

	result, err := c.Submit(context.Background(), map[string]any{"PolicyNumber": "42"})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if result.ClaimNumber != "000-00-004665" {
		t.Errorf("unexpected claim number: %s", result.ClaimNumber)
	}
	if result.StatusCode != http.StatusCreated {
		t.Errorf("unexpected status: %d", result.StatusCode)
	}
}

func TestClaimClient_Submit_Rejected(t *testing.T) {
	noSleep(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "missing LossDate"}`))
	}))
	defer server.Close()

	c := NewClaimClient(model.ClaimAPIConfig{BaseURL: server.URL, Timeout: 5 * time.Second})

	result, err := c.Submit(context.Background(), map[string]any{})
	if !errors.Is(err, ErrSubmissionFailed) {
		t.Fatalf("expected ErrSubmissionFailed, got %v", err)
	}
	if result == nil || result.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400 in result, got %+v", result)
	}
}
