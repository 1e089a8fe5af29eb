package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type stubCounter struct {
	counts map[string]int64
	fail   bool
}

func (s *stubCounter) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	if s.fail {
		return 0, errors.New("redis down")
	}
	s.counts[key]++
	return s.counts[key], nil
}

func (s *stubCounter) RateLimitKey(scope string) string {
	return "ratelimit:" + scope
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	counter := &stubCounter{counts: map[string]int64{}}
	rl := NewRateLimiter(counter, testLogger())
	handler := rl.Limit("login", 2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	rl := NewRateLimiter(&stubCounter{fail: true}, testLogger())
	handler := rl.Limit("login", 1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected fail-open 200, got %d", rec.Code)
		}
	}
}

func TestRateLimiterSeparatesClients(t *testing.T) {
	counter := &stubCounter{counts: map[string]int64{}}
	rl := NewRateLimiter(counter, testLogger())
	handler := rl.Limit("login", 1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	first := httptest.NewRequest(http.MethodPost, "/login", nil)
	first.Header.Set("X-Forwarded-For", "10.0.0.1")
	second := httptest.NewRequest(http.MethodPost, "/login", nil)
	second.Header.Set("X-Forwarded-For", "10.0.0.2")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	if rec.Code != http.StatusOK {
		t.Fatalf("first client: expected 200, got %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	if rec.Code != http.StatusOK {
		t.Fatalf("second client: expected 200, got %d", rec.Code)
	}
}
