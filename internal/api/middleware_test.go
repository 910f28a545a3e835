package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestTimingMiddlewareSetsHeader(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/warehouse/counts", nil)
	TimingMiddleware(okHandler()).ServeHTTP(rec, req)

	assert.Contains(t, rec.Header().Get("X-Process-Time"), "ms")
}

func TestRateLimitMiddlewareThrottles(t *testing.T) {
	t.Parallel()

	// 2 requests per window with burst 1: the second immediate request
	// from the same IP must be rejected.
	mw := RateLimitMiddleware(2, time.Minute)
	h := mw(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/warehouse/counts", nil)
	req.RemoteAddr = "10.0.0.1:55555"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestRateLimitMiddlewareIsPerIP(t *testing.T) {
	t.Parallel()

	mw := RateLimitMiddleware(2, time.Minute)
	h := mw(okHandler())

	first := httptest.NewRequest(http.MethodGet, "/warehouse/counts", nil)
	first.RemoteAddr = "10.0.0.1:55555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, first)
	assert.Equal(t, http.StatusOK, rec.Code)

	// A different client gets its own bucket.
	second := httptest.NewRequest(http.MethodGet, "/warehouse/counts", nil)
	second.RemoteAddr = "10.0.0.2:55555"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, second)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitMiddlewareExemptsHealthAndDocs(t *testing.T) {
	t.Parallel()

	mw := RateLimitMiddleware(2, time.Minute)
	h := mw(okHandler())

	for _, path := range []string{"/health", "/health/db", "/docs/index.html"} {
		for i := 0; i < 5; i++ {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.RemoteAddr = "10.0.0.3:55555"
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code, path)
		}
	}
}

func TestIPLimiterPrunesIdleClients(t *testing.T) {
	t.Parallel()

	l := newIPLimiter(10, time.Minute)
	l.allow("10.0.0.1")
	l.allow("10.0.0.2")
	l.clients["10.0.0.1"].lastSeen = time.Now().Add(-2 * time.Minute)

	l.mu.Lock()
	l.pruneLocked()
	l.mu.Unlock()

	assert.NotContains(t, l.clients, "10.0.0.1")
	assert.Contains(t, l.clients, "10.0.0.2")
}
