package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func limitedRequest(t *testing.T, h http.Handler, remoteAddr string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiterThrottlesPerIP(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	h := rl.Limit(okHandler())

	if code := limitedRequest(t, h, "1.2.3.4:1000"); code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", code)
	}
	if code := limitedRequest(t, h, "1.2.3.4:1000"); code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", code)
	}

	// A different client has its own bucket.
	if code := limitedRequest(t, h, "5.6.7.8:1000"); code != http.StatusOK {
		t.Fatalf("expected other client to pass, got %d", code)
	}
}

func TestRateLimiterCountsThrottledRequests(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	h := rl.Limit(okHandler())

	before := testutil.ToFloat64(rateLimitHitsTotal)

	limitedRequest(t, h, "9.9.9.9:1000")
	limitedRequest(t, h, "9.9.9.9:1000")
	limitedRequest(t, h, "9.9.9.9:1000")

	if got := testutil.ToFloat64(rateLimitHitsTotal) - before; got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %v", got)
	}
}

func TestCleanupLimitersDropsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	h := rl.Limit(okHandler())

	limitedRequest(t, h, "1.2.3.4:1000")
	limitedRequest(t, h, "5.6.7.8:1000")

	rl.mu.Lock()
	rl.limiters["1.2.3.4"].lastSeen = time.Now().Add(-time.Hour)
	rl.mu.Unlock()

	rl.CleanupLimiters(10 * time.Minute)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.limiters["1.2.3.4"]; ok {
		t.Fatal("expected idle bucket to be dropped")
	}
	if _, ok := rl.limiters["5.6.7.8"]; !ok {
		t.Fatal("expected active bucket to survive")
	}
}

func TestClientIPResolution(t *testing.T) {
	testCases := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{
			name:       "socket address",
			remoteAddr: "10.0.0.1:5000",
			expected:   "10.0.0.1",
		},
		{
			name:       "forwarded-for first hop wins",
			remoteAddr: "10.0.0.1:5000",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"},
			expected:   "203.0.113.7",
		},
		{
			name:       "real-ip fallback",
			remoteAddr: "10.0.0.1:5000",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			expected:   "203.0.113.9",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			if got := clientIP(req); got != tc.expected {
				t.Fatalf("expected %s, got %s", tc.expected, got)
			}
		})
	}
}
