package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimitMiddleware(3), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit("203.0.113.1"), "request %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, hit("203.0.113.1"))
	assert.Equal(t, http.StatusOK, hit("203.0.113.2"), "limits are per client")
}

func TestRateLimiterStore(t *testing.T) {
	s := newRateLimiterStore(0)
	assert.Equal(t, 200, s.burst)

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	first := s.getLimiter("a", now)
	assert.Same(t, first, s.getLimiter("a", now))
	s.getLimiter("b", now.Add(9*time.Minute))

	s.evict(now.Add(11*time.Minute), 10*time.Minute)
	assert.NotContains(t, s.visitors, "a")
	assert.Contains(t, s.visitors, "b")
}
