package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"io.dreamcanvas.services/internal/metrics"
)

// unmatchedRoute labels requests that hit no registered route, keeping label cardinality bounded
const unmatchedRoute = "unmatched"

// MetricsMiddleware records HTTP metrics for each request
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		m.IncrementInFlight()
		defer m.DecrementInFlight()

		c.Next()

		// Use route pattern so /user/7/dreams and /user/8/dreams share a series
		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}

		m.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
