package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/platform/http/view"
	"blog_backend/internal/shared/ratelimiter"
)

// RateLimit はクライアントIPがlimiterの枠を使い切ると429を返します。
func RateLimit(limiter ratelimiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			slog.Warn("rate limit exceeded", "path", c.Request.URL.Path, "remote_addr", c.ClientIP())
			view.Error(c, http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
