package middleware

import (
	"strconv" // Status code labels
	"time"    // Request timing

	"employee_messaging/internal/metrics" // Prometheus collectors

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequestMetrics records the duration of every request by route and status
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next() // Run the rest of the chain first

		route := c.FullPath()
		if route == "" {
			route = "unmatched" // Keep 404 paths out of the label set
		}
		metrics.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
