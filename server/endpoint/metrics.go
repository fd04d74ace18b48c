package endpoint

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
)

// Metrics returns a handler with a runtime snapshot for operators poking at
// a live process. The OTLP exporter carries the real metrics.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		const mb = 1024 * 1024
		c.JSON(http.StatusOK, gin.H{
			"goroutines": runtime.NumGoroutine(),
			"memory": gin.H{
				"alloc_mb":       mem.Alloc / mb,
				"total_alloc_mb": mem.TotalAlloc / mb,
				"sys_mb":         mem.Sys / mb,
				"gc_runs":        mem.NumGC,
			},
		})
	}
}
