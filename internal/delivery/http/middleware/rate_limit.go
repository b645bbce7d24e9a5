package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"career-coach-backend/internal/delivery/http/response"
	"career-coach-backend/internal/domain"
	"career-coach-backend/pkg/logger"
	"career-coach-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitRule is a fixed-window limit on requests sharing a key.
type RateLimitRule struct {
	Name   string
	Limit  int
	Window time.Duration
	Key    func(*gin.Context) string
	// FailClosed rejects requests when the shared Redis counter errors
	// instead of counting locally.
	FailClosed bool
}

// PerClientIP limits every route by client address.
func PerClientIP(limit int, window time.Duration) RateLimitRule {
	return RateLimitRule{
		Name:   "ip",
		Limit:  limit,
		Window: window,
		Key:    func(c *gin.Context) string { return c.ClientIP() },
	}
}

// PerCallerAI limits generative-text routes by authenticated caller. Provider
// calls are billed, so an unreachable counter rejects.
func PerCallerAI(limit int, window time.Duration) RateLimitRule {
	return RateLimitRule{
		Name:       "ai",
		Limit:      limit,
		Window:     window,
		FailClosed: true,
		Key: func(c *gin.Context) string {
			if id, ok := c.Request.Context().Value(domain.KeyExternalID).(string); ok && id != "" {
				return id
			}
			return c.ClientIP()
		},
	}
}

// hitScript increments the window counter and returns {count, pttl}.
var hitScript = goredis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
    redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {n, redis.call('PTTL', KEYS[1])}
`)

func redisHit(ctx context.Context, client *goredis.Client, key string, window time.Duration) (int, time.Time, error) {
	res, err := hitScript.Run(ctx, client, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit counter: %w", err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("rate limit counter: unexpected reply %v", res)
	}
	return int(res[0]), time.Now().Add(time.Duration(res[1]) * time.Millisecond), nil
}

type localWindow struct {
	count   int
	resetAt time.Time
}

// localCounter is the per-process fallback when Redis is not configured.
type localCounter struct {
	mu        sync.Mutex
	windows   map[string]*localWindow
	lastSweep time.Time
}

func newLocalCounter() *localCounter {
	return &localCounter{windows: make(map[string]*localWindow)}
}

func (l *localCounter) hit(key string, window time.Duration, now time.Time) (int, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= window {
		for k, w := range l.windows {
			if !now.Before(w.resetAt) {
				delete(l.windows, k)
			}
		}
		l.lastSweep = now
	}

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &localWindow{resetAt: now.Add(window)}
		l.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt
}

// RateLimit enforces rule with a Redis counter shared across instances, or a
// local one when Redis is absent.
func RateLimit(rule RateLimitRule) gin.HandlerFunc {
	local := newLocalCounter()
	prefix := "rl:" + rule.Name + ":"

	return func(c *gin.Context) {
		key := prefix + rule.Key(c)

		var (
			count   int
			resetAt time.Time
		)
		client := redis.Client()
		if client != nil {
			var err error
			count, resetAt, err = redisHit(c.Request.Context(), client, key, rule.Window)
			if err != nil {
				logger.Log.Warn("Rate limiter redis error", "rule", rule.Name, "error", err)
				if rule.FailClosed {
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
				client = nil
			}
		}
		if client == nil {
			count, resetAt = local.hit(key, rule.Window, time.Now())
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rule.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > rule.Limit {
			retryAfter := max(int(time.Until(resetAt).Seconds()), 1)
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			logger.Log.Warn("Rate limit triggered", "rule", rule.Name, "client_ip", c.ClientIP(), "path", c.FullPath())
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(rule.Limit-count))
		c.Next()
	}
}
