package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/secureapi/observability"
)

// RequestMetrics records a counter and latency histogram for every request,
// labeled by method, route template, and status.
func RequestMetrics(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordRequest(c.Request.Context(), c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
