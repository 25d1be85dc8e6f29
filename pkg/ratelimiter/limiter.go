// Package ratelimiter wraps golang.org/x/time/rate behind the small
// surface the HTTP API needs, including a 429-returning middleware.
package ratelimiter

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

type RateLimiter struct {
	limiter *rate.Limiter
	burst   int
	rps     int
}

// NewFromRPS creates a token-bucket limiter allowing rps requests per
// second with the given burst capacity.
func NewFromRPS(rps int, burst int) *RateLimiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = rps
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		burst:   burst,
		rps:     rps,
	}
}

// Wait blocks until a token is available or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.limiter.Wait(ctx)
}

// TryAcquire attempts to take a token without blocking.
func (rl *RateLimiter) TryAcquire() bool {
	return rl.limiter.Allow()
}

// GetStats returns the approximate tokens available, the bucket capacity
// and the refill rate.
func (rl *RateLimiter) GetStats() (available int, capacity int, refill time.Duration) {
	return int(rl.limiter.Tokens()), rl.burst, time.Second / time.Duration(rl.rps)
}

// Middleware rejects requests with 429 once the bucket is empty.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.TryAcquire() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
