package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stockdash/internal/metrics"
)

// Metrics counts and times every request by method, route template and status.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := routeOf(c)
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
