// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements a lightweight, in-memory, fixed-window rate limiter
// with per-client counters and opportunistic garbage collection. It is
// designed for simplicity, low overhead, and predictable behavior in a
// single-process deployment.
//
// Notes:
//   - This limiter is process-local. For horizontally scaled deployments,
//     prefer a distributed limiter (e.g., Redis-backed) to enforce global
//     limits.
//   - The limiter is intended for edge-level abuse control; it is not an
//     authorization mechanism.
package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// keyFunc selects the identity used to key a rate-limit window.
//
// Implementations should return a stable string for the duration of a request.
type keyFunc func(*gin.Context) string

// KeyByIP returns a keyFunc keyed on the client IP address.
func KeyByIP() keyFunc {
	return func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}
}

// window holds one client's request count for the current fixed window.
type window struct {
	count    int
	start    time.Time
	lastSeen time.Time
}

// RateLimiter implements a per-key fixed-window rate limiter: up to limit
// requests per windowSize, counted from the first request of each window.
// When the window expires the count resets; there is no smoothing across
// window boundaries.
//
// Windows are created on demand and stored in an internal map guarded by a
// mutex. Idle entries are evicted via opportunistic cleanup during lookups to
// keep memory usage bounded.
//
// This type is safe for concurrent use.
type RateLimiter struct {
	limit      int
	windowSize time.Duration
	keyFn      keyFunc

	mu       sync.Mutex
	windows  map[string]*window
	ttl      time.Duration
	cleanupN uint64
}

// NewRateLimiter constructs a RateLimiter allowing limit requests per
// windowSize, keyed by keyFn.
//
//   - limit: requests allowed per window; values <= 0 are coerced to 1.
//   - windowSize: length of the fixed window; values <= 0 default to a minute.
//   - keyFn: function that maps a request to a window identity.
//
// The returned limiter is ready to be installed as middleware via Handler().
func NewRateLimiter(limit int, windowSize time.Duration, keyFn keyFunc) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	if windowSize <= 0 {
		windowSize = time.Minute
	}
	return &RateLimiter{
		limit:      limit,
		windowSize: windowSize,
		keyFn:      keyFn,
		windows:    make(map[string]*window),
		ttl:        10 * time.Minute, // evict idle entries after TTL
	}
}

// take records one request against key and reports whether it is within the
// limit, along with the time remaining until the window resets.
//
// Opportunistic GC runs after a threshold of lookups, and BEFORE touching the
// requested window so an idle entry can be evicted even when it is the one
// being fetched.
func (rl *RateLimiter) take(key string) (allowed bool, retryAfter time.Duration) {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.cleanupN++
	if rl.cleanupN >= 5000 {
		for k, w := range rl.windows {
			if now.Sub(w.lastSeen) >= rl.ttl {
				delete(rl.windows, k)
			}
		}
		rl.cleanupN = 0
	}

	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.windowSize {
		rl.windows[key] = &window{count: 1, start: now, lastSeen: now}
		return true, 0
	}

	w.lastSeen = now
	if w.count < rl.limit {
		w.count++
		return true, 0
	}
	return false, rl.windowSize - now.Sub(w.start)
}

// Handler returns a Gin middleware that enforces the fixed-window limit.
//
// Requests over the limit receive:
//
//	HTTP/1.1 429 Too Many Requests
//	Retry-After: <seconds until the window resets>
//	{ "success": false, "message": "Too many requests, please try again later." }
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter := rl.take(rl.keyFn(c))
		if allowed {
			c.Next()
			return
		}

		secs := int(retryAfter.Seconds() + 0.5)
		if secs < 1 {
			secs = 1
		}
		c.Header("Retry-After", strconv.Itoa(secs))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"success": false,
			"message": "Too many requests, please try again later.",
		})
	}
}
