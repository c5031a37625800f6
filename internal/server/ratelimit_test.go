package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"resumelift/internal/errors"
)

func newTestLogger(t *testing.T) *errors.Logger {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return logger
}

func TestRateLimiterAllowsBurstThenBlocks(t *testing.T) {
	limiter := NewRateLimiter(5, 5*time.Minute, 3, newTestLogger(t))
	defer limiter.Close()

	for i := range 3 {
		if !limiter.Allow("ip:10.0.0.1") {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}
	if limiter.Allow("ip:10.0.0.1") {
		t.Error("request beyond burst capacity should be blocked")
	}

	// A different key gets its own bucket.
	if !limiter.Allow("ip:10.0.0.2") {
		t.Error("separate key should not share the exhausted bucket")
	}
}

func TestRateLimiterGetStats(t *testing.T) {
	limiter := NewRateLimiter(5, 5*time.Minute, 5, newTestLogger(t))
	defer limiter.Close()

	limiter.Allow("api:abc")
	limiter.Allow("ip:10.0.0.1")

	stats := limiter.GetStats()
	if stats["active_clients"] != 2 {
		t.Errorf("active_clients = %v, want 2", stats["active_clients"])
	}
	if stats["requests_per_window"] != 5.0 {
		t.Errorf("requests_per_window = %v, want 5", stats["requests_per_window"])
	}
	if stats["window_seconds"] != 300.0 {
		t.Errorf("window_seconds = %v, want 300", stats["window_seconds"])
	}
	if stats["burst_capacity"] != 5 {
		t.Errorf("burst_capacity = %v, want 5", stats["burst_capacity"])
	}
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(5, 5*time.Minute, 1, newTestLogger(t))
	defer limiter.Close()

	limiter.Allow("ip:10.0.0.1")
	limiter.mu.Lock()
	limiter.clients["ip:10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	limiter.mu.Unlock()

	limiter.evictIdle(10 * time.Minute)

	limiter.mu.Lock()
	_, exists := limiter.clients["ip:10.0.0.1"]
	limiter.mu.Unlock()
	if exists {
		t.Error("idle client bucket should have been evicted")
	}
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		byAPIKey bool
		byIP     bool
		want     string
	}{
		{
			name:     "api key header preferred",
			headers:  map[string]string{"X-API-Key": "secret-key"},
			byAPIKey: true,
			byIP:     true,
			want:     "api:secret-key",
		},
		{
			name:     "bearer token fallback",
			headers:  map[string]string{"Authorization": "Bearer tok-123"},
			byAPIKey: true,
			want:     "api:tok-123",
		},
		{
			name: "falls back to IP",
			byIP: true,
			want: "ip:192.0.2.1",
		},
		{
			name: "no keying configured",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/enhance", nil)
			r.RemoteAddr = "192.0.2.1:54321"
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := getRateLimitKey(r, tt.byAPIKey, tt.byIP); got != tt.want {
				t.Errorf("getRateLimitKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:    "x-forwarded-for first valid IP",
			headers: map[string]string{"X-Forwarded-For": "garbage, 203.0.113.7"},
			remote:  "192.0.2.1:1234",
			want:    "203.0.113.7",
		},
		{
			name:    "x-real-ip",
			headers: map[string]string{"X-Real-IP": "198.51.100.9"},
			remote:  "192.0.2.1:1234",
			want:    "198.51.100.9",
		},
		{
			name:   "remote addr host",
			remote: "192.0.2.1:1234",
			want:   "192.0.2.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/health", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := getClientIP(r); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
