package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(limit int, window time.Duration) (*gin.Engine, *RateLimiter) {
	limiter := NewRateLimiter(limit, window)
	router := gin.New()
	router.POST("/login", limiter.RateLimit(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router, limiter
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	router, limiter := newLimitedRouter(3, time.Minute)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	router, limiter := newLimitedRouter(2, time.Minute)
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	router, limiter := newLimitedRouter(1, 50*time.Millisecond)
	defer limiter.Stop()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/login", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// После окна запросы вновь проходят
	time.Sleep(60 * time.Millisecond)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/login", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_StopThenServe(t *testing.T) {
	router, limiter := newLimitedRouter(2, time.Minute)

	// Остановка фоновой очистки не мешает обслуживанию запросов
	limiter.Stop()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPruneBefore(t *testing.T) {
	now := time.Now()
	times := []time.Time{
		now.Add(-3 * time.Minute),
		now.Add(-2 * time.Minute),
		now.Add(-30 * time.Second),
		now,
	}

	recent := pruneBefore(times, now.Add(-time.Minute))
	assert.Len(t, recent, 2)
	assert.True(t, recent[0].Equal(now.Add(-30*time.Second)))
}
