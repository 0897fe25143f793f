package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Default budget per client IP.
const (
	DefaultRateLimit  = 60
	DefaultRateWindow = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	every    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

// RateLimiter allows DefaultRateLimit requests per DefaultRateWindow per IP.
func RateLimiter() gin.HandlerFunc {
	return NewRateLimiter(DefaultRateLimit, DefaultRateWindow)
}

// NewRateLimiter gives every client IP a token bucket of limit requests,
// refilled evenly over window. Each call has its own state. Requests over
// the budget get 429.
//
// Example:
//
//	router.Use(middleware.NewRateLimiter(120, time.Minute))
func NewRateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newRateLimiter(limit, window).handle
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		visitors: make(map[string]*visitor),
		every:    rate.Every(window / time.Duration(max(limit, 1))),
		burst:    limit,
		idle:     window,
		now:      time.Now,
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		rl.evict(now)
		v = &visitor{limiter: rate.NewLimiter(rl.every, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// evict drops visitors idle for longer than a full window; their bucket
// has refilled anyway. Called with mu held.
func (rl *rateLimiter) evict(now time.Time) {
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) >= rl.idle {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *rateLimiter) handle(c *gin.Context) {
	if !rl.allow(c.ClientIP()) {
		AbortWithError(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
		return
	}
	c.Next()
}
