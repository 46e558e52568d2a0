package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type staticTokens string

func (t staticTokens) Token() string { return string(t) }

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.Client(), server.URL, staticTokens(""))
	client.retryBase = time.Millisecond
	client.retryCap = 5 * time.Millisecond
	return client, server
}

func TestGetJSONSetsAcceptHeader(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("expected Accept application/json, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("anonymous request must not carry Authorization, got %q", got)
		}
		w.Write([]byte(`{}`))
	}))

	var out struct{}
	if err := client.getJSON(context.Background(), client.endpoint("/genres"), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetJSONSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-123" {
			t.Errorf("expected bearer token, got %q", got)
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, staticTokens("token-123"))
	var out struct{}
	if err := client.getJSON(context.Background(), client.endpoint("/auth/user-profile"), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetJSONRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))

	var out struct {
		OK bool `json:"ok"`
	}
	if err := client.getJSON(context.Background(), client.endpoint("/movies"), &out); err != nil {
		t.Fatalf("expected recovery after retries, got %v", err)
	}
	if !out.OK {
		t.Fatal("expected decoded body from the final attempt")
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestGetJSONDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"movie not found"}`))
	}))

	var out struct{}
	err := client.getJSON(context.Background(), client.endpoint("/movies/99"), &out)
	if err == nil {
		t.Fatal("expected an error")
	}
	if calls.Load() != 1 {
		t.Fatalf("4xx must not retry, got %d attempts", calls.Load())
	}
	if !IsNotFound(err) {
		t.Fatalf("expected IsNotFound, got %v", err)
	}
}

func TestGetJSONGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	var out struct{}
	err := client.getJSON(context.Background(), client.endpoint("/movies"), &out)
	if err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if calls.Load() != int32(client.maxAttempts) {
		t.Fatalf("expected %d attempts, got %d", client.maxAttempts, calls.Load())
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected APIError 503, got %v", err)
	}
}

func TestPostJSONDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := client.postJSON(context.Background(), client.endpoint("/payments/confirm"), map[string]int{"a": 1}, nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if calls.Load() != 1 {
		t.Fatalf("mutations must be sent exactly once, got %d attempts", calls.Load())
	}
}

func TestPostJSONExtraHeaders(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Idempotency-Key"); got != "key-1" {
			t.Errorf("expected idempotency header, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected json content type, got %q", got)
		}
		w.WriteHeader(http.StatusCreated)
	}))

	err := client.postJSON(context.Background(), client.endpoint("/payments/create-intent"),
		map[string]int{"screening_id": 1}, nil, "X-Idempotency-Key", "key-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAPIErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "message field", body: `{"message":"seats no longer available"}`, want: "seats no longer available"},
		{name: "error field", body: `{"error":"invalid credentials"}`, want: "invalid credentials"},
		{name: "validation map", body: `{"errors":{"email":["The email has already been taken."]}}`, want: "The email has already been taken."},
		{name: "raw body fallback", body: `gateway timeout`, want: "gateway timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := &APIError{StatusCode: 422, Body: tt.body}
			if got := apiErr.Message(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	apiErr := &APIError{StatusCode: 401, Body: `{"message":"Unauthenticated."}`}
	if got := ErrorMessage(apiErr, "fallback"); got != "Unauthenticated." {
		t.Fatalf("expected server message, got %q", got)
	}
	if got := ErrorMessage(errors.New("boom"), "fallback"); got != "boom" {
		t.Fatalf("expected wrapped error text, got %q", got)
	}
	if got := ErrorMessage(nil, "fallback"); got != "" {
		t.Fatalf("nil error should produce an empty string, got %q", got)
	}
}

func TestIsUnauthorized(t *testing.T) {
	if !IsUnauthorized(&APIError{StatusCode: http.StatusUnauthorized}) {
		t.Fatal("expected true for a 401")
	}
	if IsUnauthorized(&APIError{StatusCode: http.StatusForbidden}) {
		t.Fatal("expected false for a 403")
	}
	if IsUnauthorized(errors.New("plain")) {
		t.Fatal("expected false for a non-API error")
	}
}

func TestRetryDelayBackoff(t *testing.T) {
	client := NewClient(nil, "http://localhost", nil)

	if got := client.retryDelay(1); got != defaultRetryBase {
		t.Fatalf("expected base delay, got %v", got)
	}
	if got := client.retryDelay(2); got != 2*defaultRetryBase {
		t.Fatalf("expected doubled delay, got %v", got)
	}
	if got := client.retryDelay(10); got != defaultRetryCap {
		t.Fatalf("expected delay capped at %v, got %v", defaultRetryCap, got)
	}
}
