package http_metrics_middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/humanbelnik/cinegraph/internal/metrics"
)

// Observe records request counts and latency per route template, so
// /customers/101 and /customers/102 share one series.
func Observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordAPIRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}
