package middleware

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/craftloop/craftloop-backend/api/responses"
	pkgerrors "github.com/craftloop/craftloop-backend/pkg/errors"
	"github.com/craftloop/craftloop-backend/pkg/logger"
)

// Counter is the sliding-window increment surface; the Redis client
// satisfies it.
type Counter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	RateLimitKey(scope string) string
}

// RateLimiter throttles the unauthenticated auth endpoints per client IP.
// Redis being down fails open: slower brute-force protection beats a full
// login outage.
type RateLimiter struct {
	counter Counter
	logg    *logger.Logger
}

func NewRateLimiter(counter Counter, logg *logger.Logger) *RateLimiter {
	return &RateLimiter{counter: counter, logg: logg}
}

// Limit allows at most limit requests per window from one IP for the named
// scope.
func (rl *RateLimiter) Limit(scope string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rl.counter == nil || limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := rl.counter.RateLimitKey(scope) + ":" + clientIP(r)
			count, err := rl.counter.IncrWithTTL(r.Context(), key, window)
			if err != nil {
				if rl.logg != nil {
					rl.logg.Warn(r.Context(), "rate limit counter unavailable")
				}
				next.ServeHTTP(w, r)
				return
			}
			if count > int64(limit) {
				responses.WriteError(r.Context(), w, rl.logg,
					pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, slow down"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
