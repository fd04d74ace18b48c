// Package endpoint provides the unauthenticated operational endpoints:
// health, build info, and runtime metrics.
package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a dependency is reachable. A nil error
// means healthy.
type HealthChecker func(ctx context.Context) error

// Health returns a handler that reports service health. When the checker
// fails the endpoint answers 503 so load balancers stop routing here.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		httpStatus := http.StatusOK
		var detail string

		if checker != nil {
			if err := checker(c.Request.Context()); err != nil {
				status = "unhealthy"
				httpStatus = http.StatusServiceUnavailable
				detail = err.Error()
			}
		}

		body := gin.H{
			"status":    status,
			"service":   serviceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		if detail != "" {
			body["detail"] = detail
		}
		c.JSON(httpStatus, body)
	}
}
