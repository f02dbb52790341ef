package mockapi

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ============================================
// CORS
// ============================================

var (
	corsMethods = strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}, ", ")
	corsHeaders       = "Origin, Content-Type, Accept, X-Request-ID"
	corsExposeHeaders = "X-Request-ID, X-RateLimit-Limit, X-RateLimit-Remaining, Retry-After"
)

// CORS lets a browser storefront on another origin call the mock API.
// Empty origins or "*" allow every origin; preflight requests end here with 204.
func CORS(origins []string) gin.HandlerFunc {
	allowAll := len(origins) == 0 || (len(origins) == 1 && origins[0] == "*")
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		var allowOrigin string
		switch {
		case allowAll:
			allowOrigin = "*"
		case allowed[origin]:
			allowOrigin = origin
			c.Header("Vary", "Origin")
		}

		// Чужой origin: без CORS заголовков, браузер сам заблокирует ответ
		if allowOrigin == "" && origin != "" {
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Origin", allowOrigin)
		c.Header("Access-Control-Allow-Methods", corsMethods)
		c.Header("Access-Control-Allow-Headers", corsHeaders)
		c.Header("Access-Control-Expose-Headers", corsExposeHeaders)
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// ============================================
// Rate limiting
// ============================================

// rateLimiter is a fixed window counter per client key.
type rateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count int
	start time.Time
}

func newRateLimiter(limit int, per time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:   limit,
		window:  per,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

// allow counts one request for key and returns the remaining budget and the
// time until the window resets.
func (rl *rateLimiter) allow(key string) (bool, int, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.window {
		rl.evictLocked(now)
		w = &window{start: now}
		rl.windows[key] = w
	}

	reset := rl.window - now.Sub(w.start)
	if w.count >= rl.limit {
		return false, 0, reset
	}
	w.count++
	return true, rl.limit - w.count, reset
}

// evictLocked drops windows that ended long ago.
func (rl *rateLimiter) evictLocked(now time.Time) {
	for key, w := range rl.windows {
		if now.Sub(w.start) > 2*rl.window {
			delete(rl.windows, key)
		}
	}
}

// RateLimit allows limit requests per window from one client IP and answers
// 429 with Retry-After beyond that.
func RateLimit(limit int, per time.Duration) gin.HandlerFunc {
	return rateLimit(newRateLimiter(limit, per))
}

func rateLimit(rl *rateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, remaining, reset := rl.allow(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !ok {
			c.Header("Retry-After", strconv.Itoa(max(1, int(reset.Seconds()))))
			Error(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}
