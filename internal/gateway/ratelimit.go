package gateway

import (
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RateLimiter throttles clients by sharer ID (falling back to remote
// address) using per-minute counters in Redis, so multiple gateway replicas
// share one budget.
type RateLimiter struct {
	client *redis.Client
	limit  int
	logger zerolog.Logger
}

// NewRateLimiter creates a RateLimiter allowing requestsPerMinute per client.
func NewRateLimiter(client *redis.Client, requestsPerMinute int, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  requestsPerMinute,
		logger: logger.With().Str("component", "ratelimit").Logger(),
	}
}

// Middleware rejects requests over the per-minute budget with 429.
// Redis failures let traffic through; the limiter protects the backend,
// it must not take the edge down with it.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)

		count, err := rl.client.Incr(r.Context(), key).Result()
		if err != nil {
			rl.logger.Warn().Err(err).Msg("rate limit check failed, allowing request")
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			rl.client.Expire(r.Context(), key, time.Minute)
		}

		if count > int64(rl.limit) {
			rl.logger.Info().Str("client", key).Int64("count", count).Msg("rate limit exceeded")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey identifies a client for throttling purposes.
func clientKey(r *http.Request) string {
	id := r.Header.Get("X-Sharer-User-Id")
	if id == "" {
		id = r.RemoteAddr
	}
	return fmt.Sprintf("ratelimit:%s:%d", id, time.Now().Unix()/60)
}
