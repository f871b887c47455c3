package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter ограничивает число запросов с одного IP
// в скользящем окне. Используется для auth-маршрутов.
type RateLimiter struct {
	mu      sync.Mutex
	hits    map[string][]time.Time
	limit   int
	window  time.Duration
	stopped chan struct{}
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		hits:    make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		stopped: make(chan struct{}),
	}

	// Периодически убираем IP без свежих запросов
	go rl.cleanupLoop(5 * time.Minute)

	return rl
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		ip := c.ClientIP()

		rl.mu.Lock()
		recent := pruneBefore(rl.hits[ip], now.Add(-rl.window))
		if len(recent) >= rl.limit {
			rl.hits[ip] = recent
			rl.mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		rl.hits[ip] = append(recent, now)
		rl.mu.Unlock()

		c.Next()
	}
}

// Stop останавливает фоновую очистку.
func (rl *RateLimiter) Stop() {
	close(rl.stopped)
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopped:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.window)
	for ip, times := range rl.hits {
		recent := pruneBefore(times, cutoff)
		if len(recent) == 0 {
			delete(rl.hits, ip)
			continue
		}
		rl.hits[ip] = recent
	}
}

// pruneBefore отбрасывает отметки старше cutoff, сохраняя порядок.
func pruneBefore(times []time.Time, cutoff time.Time) []time.Time {
	idx := 0
	for idx < len(times) && !times[idx].After(cutoff) {
		idx++
	}
	return times[idx:]
}
