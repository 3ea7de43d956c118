package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/zeppelin-cash/internal/platform/metrics"
)

// UnmatchedRoute labels requests that hit no registered route
const UnmatchedRoute = "unmatched"

// Metrics counts every request under its route template, so path parameters do not
// explode the label set
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = UnmatchedRoute
		}
		m.IncrHTTPRequest(route, c.Writer.Status())
	}
}
