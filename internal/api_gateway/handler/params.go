package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// endOfTime bounds open-ended range queries
var endOfTime = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// queryTime parses an RFC3339 query parameter, returning fallback when it is absent
func queryTime(c *gin.Context, name string, fallback time.Time) (time.Time, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("query parameter %q must be an RFC3339 time", name)
	}
	return t.UTC(), nil
}

// requiredQueryTime parses an RFC3339 query parameter that must be present
func requiredQueryTime(c *gin.Context, name string) (time.Time, error) {
	if raw := c.Query(name); raw == "" {
		return time.Time{}, fmt.Errorf("query parameter %q is required", name)
	}
	return queryTime(c, name, time.Time{})
}
