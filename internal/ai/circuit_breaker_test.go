package ai

import (
	"errors"
	"testing"
	"time"

	"resumelift/internal/config"
	apperrors "resumelift/internal/errors"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

func newBreakerLogger() *apperrors.Logger {
	logger, _ := apperrors.New("error")
	return logger
}

func enabledBreakerConfig() config.CircuitBreakerConfig {
	return config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          60 * time.Second,
		MinRequests:      3,
		FailureThreshold: 0.6,
	}
}

func TestRewriteCircuitBreakerStats(t *testing.T) {
	cb := NewRewriteCircuitBreaker("gemini-2.0-flash", enabledBreakerConfig(), newBreakerLogger())

	stats := cb.GetStats()

	name, ok := stats["name"].(string)
	if !ok {
		t.Fatal("Circuit breaker name not found")
	}
	if name != "rewrite-gemini-2.0-flash" {
		t.Errorf("Expected circuit breaker name 'rewrite-gemini-2.0-flash', got '%s'", name)
	}

	state, ok := stats["state"].(string)
	if !ok {
		t.Fatal("Circuit breaker state not found")
	}
	if state != "closed" {
		t.Errorf("Expected initial state 'closed', got '%s'", state)
	}

	enabled, ok := stats["enabled"].(bool)
	if !ok {
		t.Fatal("Circuit breaker enabled status not found")
	}
	if !enabled {
		t.Error("Circuit breaker should be enabled")
	}

	if !cb.IsHealthy() {
		t.Error("Circuit breaker should start healthy")
	}
}

func TestCircuitBreakerDisabled(t *testing.T) {
	cfg := enabledBreakerConfig()
	cfg.Enabled = false

	cb := NewRewriteCircuitBreaker("gemini-2.0-flash", cfg, newBreakerLogger())

	if cb != nil {
		t.Fatal("Expected nil circuit breaker when disabled")
	}

	// Nil breaker passes calls straight through
	called := false
	_, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		called = true
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Unexpected error from passthrough execute: %v", err)
	}
	if !called {
		t.Error("Expected function to be called through nil breaker")
	}

	if !cb.IsHealthy() {
		t.Error("Nil circuit breaker should report healthy")
	}

	stats := cb.GetStats()
	if enabled, _ := stats["enabled"].(bool); enabled {
		t.Error("Disabled circuit breaker should report enabled=false")
	}
}

func TestCircuitBreakerTripsOnFailures(t *testing.T) {
	cfg := enabledBreakerConfig()
	cfg.MinRequests = 3
	cfg.FailureThreshold = 0.6

	cb := NewRewriteCircuitBreaker("gemini-2.0-flash", cfg, newBreakerLogger())

	failing := func() (*genai.GenerateContentResponse, error) {
		return nil, errors.New("service unavailable")
	}

	for range 5 {
		_, _ = cb.Execute(failing)
	}

	if cb.IsHealthy() {
		t.Error("Circuit breaker should be open after repeated failures")
	}

	stats := cb.GetStats()
	if state, _ := stats["state"].(string); state != "open" {
		t.Errorf("Expected state 'open', got '%s'", state)
	}
}

func TestModelCircuitBreakerIndependence(t *testing.T) {
	cfg := enabledBreakerConfig()

	rewriteCB := NewRewriteCircuitBreaker("gemini-2.0-flash", cfg, newBreakerLogger())
	modelCB := NewModelCircuitBreaker("gemini-2.0-flash", cfg, newBreakerLogger())

	// Trip only the rewrite breaker
	for range 5 {
		_, _ = rewriteCB.Execute(func() (*genai.GenerateContentResponse, error) {
			return nil, errors.New("boom")
		})
	}

	if rewriteCB.IsHealthy() {
		t.Error("Rewrite breaker should be open")
	}
	if !modelCB.IsModelHealthy() {
		t.Error("Model breaker should be unaffected by rewrite failures")
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{name: "nil error", err: nil, retryable: false},
		{name: "generic error", err: errors.New("bad input"), retryable: false},
		{name: "rate limited", err: &googleapi.Error{Code: 429}, retryable: true},
		{name: "server error", err: &googleapi.Error{Code: 500}, retryable: true},
		{name: "bad gateway", err: &googleapi.Error{Code: 502}, retryable: true},
		{name: "unauthorized", err: &googleapi.Error{Code: 401}, retryable: false},
		{name: "bad request", err: &googleapi.Error{Code: 400}, retryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.retryable {
				t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.retryable)
			}
		})
	}
}
