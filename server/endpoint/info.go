package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/secureapi/version"
)

var processStart = time.Now()

// Info returns a handler reporting the build and how long the process has
// been up.
func Info(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		build := version.Get()
		c.JSON(http.StatusOK, gin.H{
			"service":    serviceName,
			"version":    build.Version,
			"git_commit": build.GitCommit,
			"build_time": build.BuildTime,
			"go_version": build.GoVersion,
			"is_release": build.IsRelease,
			"uptime":     time.Since(processStart).Round(time.Second).String(),
		})
	}
}
