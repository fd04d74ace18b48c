package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/secureapi/errors"
)

const limiterWindow = time.Minute

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// RequestsPerMinute is the per-key cap inside the sliding window.
	RequestsPerMinute int
	// KeyFunc derives the limiter key from a request. Defaults to the
	// client IP.
	KeyFunc func(*gin.Context) string
}

// RateLimit returns a middleware enforcing a per-key sliding-window limit.
// The login endpoint uses it keyed by client IP, so password guessing is
// throttled without locking anyone's account.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = IPBasedKey
	}

	lim := &slidingWindow{
		hits:  make(map[string][]time.Time),
		limit: cfg.RequestsPerMinute,
	}
	go lim.sweep(5 * time.Minute)

	return func(c *gin.Context) {
		if !lim.allow(cfg.KeyFunc(c)) {
			appErr := apperrors.RateLimited()
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}
		c.Next()
	}
}

// IPBasedKey keys the limiter by client IP.
func IPBasedKey(c *gin.Context) string {
	return c.ClientIP()
}

type slidingWindow struct {
	mu    sync.Mutex
	hits  map[string][]time.Time
	limit int
}

func (w *slidingWindow) allow(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	recent := pruneBefore(w.hits[key], now.Add(-limiterWindow))
	if len(recent) >= w.limit {
		w.hits[key] = recent
		return false
	}
	w.hits[key] = append(recent, now)
	return true
}

// sweep periodically drops keys whose entries have all aged out, keeping the
// map from growing with one slice per IP ever seen.
func (w *slidingWindow) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for range ticker.C {
		w.mu.Lock()
		cutoff := time.Now().Add(-limiterWindow)
		for key, times := range w.hits {
			if recent := pruneBefore(times, cutoff); len(recent) == 0 {
				delete(w.hits, key)
			} else {
				w.hits[key] = recent
			}
		}
		w.mu.Unlock()
	}
}

func pruneBefore(times []time.Time, cutoff time.Time) []time.Time {
	kept := times[:0:0]
	for _, t := range times {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
