package middlewares

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/lam3a/rush-backend/utils"
)

type RateLimiter struct {
	rate     int
	interval time.Duration
	ips      map[string][]time.Time
	mu       sync.Mutex
}

func NewRateLimiter(r int, intervalSeconds int) *RateLimiter {
	return &RateLimiter{
		rate:     r,
		interval: time.Duration(intervalSeconds) * time.Second,
		ips:      make(map[string][]time.Time),
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rl.mu.Lock()
		defer rl.mu.Unlock()

		now := time.Now()
		cutoff := now.Add(-rl.interval)
		valid := make([]time.Time, 0, len(rl.ips[ip]))
		for _, t := range rl.ips[ip] {
			if t.After(cutoff) {
				valid = append(valid, t)
			}
		}

		if len(valid) >= rl.rate {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}

		rl.ips[ip] = append(valid, now)
		c.Next()
	}
}

// NewStrictRateLimiter guards login/register. Repeated hits against the
// limit get an exponentially growing Retry-After with jitter instead of a
// flat pause, so clients back off instead of retrying on a fixed cadence.
func NewStrictRateLimiter() gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Every(time.Minute/5), 5)

	var mu sync.Mutex
	backoffs := make(map[string]*utils.Backoff)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !limiter.Allow() {
			mu.Lock()
			b, ok := backoffs[ip]
			if !ok {
				b = utils.NewBackoff(time.Second, 2*time.Minute, 0)
				backoffs[ip] = b
			}
			delay, _ := b.Next()
			mu.Unlock()

			c.Header("Retry-After", strconv.Itoa(int(delay.Seconds())+1))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many attempts, slow down",
			})
			c.Abort()
			return
		}

		mu.Lock()
		if b, ok := backoffs[ip]; ok {
			b.Reset()
		}
		mu.Unlock()

		c.Next()
	}
}
