package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefwd/orderdesk/pkg/auth"
)

func setupLimiter(t *testing.T, config *RateLimitConfig) (*DistributedRateLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewDistributedRateLimiter(client, config, "test"), mr
}

func TestDistributedRateLimiter_Allow(t *testing.T) {
	limiter, mr := setupLimiter(t, &RateLimitConfig{
		RequestsPerWindow: 3,
		WindowDuration:    time.Minute,
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "user:alice")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "user:alice")
	require.NoError(t, err)
	assert.False(t, allowed)

	// Other keys have their own window.
	allowed, err = limiter.Allow(ctx, "user:bob")
	require.NoError(t, err)
	assert.True(t, allowed)

	// The window resets once the key expires.
	mr.FastForward(2 * time.Minute)
	allowed, err = limiter.Allow(ctx, "user:alice")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestDistributedRateLimiter_FailsOpen(t *testing.T) {
	limiter, mr := setupLimiter(t, nil)
	mr.Close()

	allowed, err := limiter.Allow(context.Background(), "user:alice")
	assert.Error(t, err)
	assert.True(t, allowed)
}

func TestDistributedRateLimiter_Handler(t *testing.T) {
	limiter, _ := setupLimiter(t, &RateLimitConfig{
		RequestsPerWindow: 1,
		WindowDuration:    time.Minute,
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := limiter.Handler(next)

	t.Run("keyed per principal", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authenticatedRequest(&auth.Principal{ID: "alice"}, "tok"))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		handler.ServeHTTP(w, authenticatedRequest(&auth.Principal{ID: "alice"}, "tok"))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)

		// A different principal is unaffected.
		w = httptest.NewRecorder()
		handler.ServeHTTP(w, authenticatedRequest(&auth.Principal{ID: "bob"}, "tok"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unauthenticated requests keyed by remote address", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.9:1234"

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})
}
