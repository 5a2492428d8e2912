package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"

	"github.com/FolioForge/portfolio-backend/internal/middleware"
)

func hit(handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// TestRateLimiter_BurstThenReject: requests beyond the burst from one IP get
// 429 with a Retry-After header.
func TestRateLimiter_BurstThenReject(t *testing.T) {
	limiter := middleware.NewIPRateLimiter(rate.Limit(0.001), 3)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		if rec := hit(handler, "10.0.0.1:5555"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}

	rec := hit(handler, "10.0.0.1:5555")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on 429")
	}
}

// TestRateLimiter_PerIP: exhausting one IP's bucket leaves other IPs alone.
func TestRateLimiter_PerIP(t *testing.T) {
	limiter := middleware.NewIPRateLimiter(rate.Limit(0.001), 1)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	if rec := hit(handler, "10.0.0.1:5555"); rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}
	if rec := hit(handler, "10.0.0.1:5555"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request same IP: expected 429, got %d", rec.Code)
	}
	if rec := hit(handler, "10.0.0.2:5555"); rec.Code != http.StatusOK {
		t.Errorf("different IP: expected 200, got %d", rec.Code)
	}
}
