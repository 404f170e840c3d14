package middleware

import (
	"strconv"
	"time"

	"microblog/internal/observability"

	"github.com/gin-gonic/gin"
)

// PrometheusMiddleware tracks HTTP metrics per route pattern.
func PrometheusMiddleware(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()

		method := c.Request.Method
		endpoint := c.FullPath() // e.g. /blog/create
		if endpoint == "" {
			endpoint = c.Request.URL.Path // fallback when no route matched
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
	}
}
