package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/platefwd/orderdesk/pkg/httputil"
)

// RateLimitConfig defines rate limiting configuration
type RateLimitConfig struct {
	// RequestsPerWindow is the max requests allowed in the time window
	RequestsPerWindow int
	// WindowDuration is the time window for rate limiting
	WindowDuration time.Duration
}

// DefaultRateLimitConfig returns default rate limit settings
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		RequestsPerWindow: 600,
		WindowDuration:    time.Minute,
	}
}

// DistributedRateLimiter implements fixed-window rate limiting backed by
// Redis so limits are shared across instances.
type DistributedRateLimiter struct {
	redis  *redis.Client
	config *RateLimitConfig
	prefix string
}

// NewDistributedRateLimiter creates a Redis-backed rate limiter
func NewDistributedRateLimiter(redisClient *redis.Client, config *RateLimitConfig, prefix string) *DistributedRateLimiter {
	if config == nil {
		config = DefaultRateLimitConfig()
	}
	if prefix == "" {
		prefix = "ratelimit"
	}

	return &DistributedRateLimiter{
		redis:  redisClient,
		config: config,
		prefix: prefix,
	}
}

// Allow checks if a request is allowed for the given key. On Redis errors
// it fails open: rate limiting protects capacity, it is not an
// authorization control.
func (rl *DistributedRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("%s:%s", rl.prefix, key)

	pipe := rl.redis.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.WindowDuration)

	if _, err := pipe.Exec(ctx); err != nil {
		return true, fmt.Errorf("redis error: %w", err)
	}

	return incr.Val() <= int64(rl.config.RequestsPerWindow), nil
}

// Handler wraps an HTTP handler with per-principal rate limiting.
// Unauthenticated requests are keyed by remote address.
func (rl *DistributedRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if principal := GetPrincipal(r); principal != nil {
			key = "user:" + principal.ID
		}

		allowed, _ := rl.Allow(r.Context(), key)
		if !allowed {
			httputil.WriteTooManyRequests(w, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
