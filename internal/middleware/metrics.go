package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CHH01/runipet/pkg/metrics"
)

// MetricsMiddleware records request counts and latency per route.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// FullPath keeps label cardinality bounded (":id", not raw ids).
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.RequestCount.WithLabelValues(
			c.Request.Method, route, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.RequestDuration.WithLabelValues(
			c.Request.Method, route,
		).Observe(time.Since(start).Seconds())
	}
}
