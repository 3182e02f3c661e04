package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CHH01/runipet/pkg/logger"
)

// LoggingMiddleware logs every request with timing and outcome.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		userID := c.GetString("userId")

		event := logger.Log.Info()
		if status >= 400 {
			event = logger.Log.Warn()
		}
		if status >= 500 {
			event = logger.Log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Str("user_id", userID).
			Msg("request")
	}
}
