package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ripu1821/mobile-auth-service/internal/http/response"
)

// Fixed one-minute window per client. INCR + PEXPIRE must be atomic or a
// crashed request could leave a counter with no expiry.
var rateLimitScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window_ms = tonumber(ARGV[2])

local count = redis.call("INCR", key)
if count == 1 then
  redis.call("PEXPIRE", key, window_ms)
end
if count > limit then
  local ttl = redis.call("PTTL", key)
  if ttl < 0 then
    ttl = window_ms
  end
  return {0, ttl}
end
return {1, 0}
`)

type RateLimiter struct {
	client redis.UniversalClient
	limit  int
	window time.Duration
	prefix string
}

func NewRateLimiter(client redis.UniversalClient, limitPerMinute int) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limitPerMinute,
		window: time.Minute,
		prefix: "ratelimit:auth",
	}
}

// Middleware throttles auth endpoints per client IP. On Redis failure the
// request is allowed through; availability beats throttling here.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := fmt.Sprintf("%s:%s", l.prefix, clientIP(r))
		raw, err := rateLimitScript.Run(
			r.Context(),
			l.client,
			[]string{key},
			l.limit,
			l.window.Milliseconds(),
		).Result()
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		values, ok := raw.([]interface{})
		if !ok || len(values) < 2 {
			next.ServeHTTP(w, r)
			return
		}
		allowed, _ := values[0].(int64)
		if allowed == 1 {
			next.ServeHTTP(w, r)
			return
		}

		retryMs, _ := values[1].(int64)
		retryAfter := int((time.Duration(retryMs) * time.Millisecond).Round(time.Second).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		response.Error(w, r, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests", nil)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
