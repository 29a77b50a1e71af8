package middleware

import (
	"time"

	"github.com/agency/backend/internal/infrastructure/metrics"
	"github.com/gin-gonic/gin"
)

// unmatchedRoute bounds the route label for requests no route handled.
const unmatchedRoute = "unmatched"

// HTTPMetrics records latency and status per route template. Routes listed in
// skip (probes and the scrape endpoint) are not observed.
func HTTPMetrics(m *metrics.Metrics, skip ...string) gin.HandlerFunc {
	ignored := make(map[string]struct{}, len(skip))
	for _, route := range skip {
		ignored[route] = struct{}{}
	}

	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		if _, ok := ignored[c.FullPath()]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		m.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
