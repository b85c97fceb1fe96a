package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-backend/internal/pkg/metrics"
)

// Metrics records request latency per route template
func Metrics(m *metrics.Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
