package middleware

import (
	"time"

	"supply-demand/internal/logger"

	"github.com/gin-gonic/gin"
)

// Logger middleware logs one line per request
func Logger(log *logger.Log) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithComponent("api").WithFields(logger.Fields{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"status":      c.Writer.Status(),
			"client_ip":   c.ClientIP(),
			"duration_ms": float64(time.Since(start).Nanoseconds()) / 1e6,
		})
		if len(c.Errors) > 0 {
			entry.WithFields(logger.Fields{"errors": c.Errors.String()}).Warn("request failed")
			return
		}
		entry.Info("request")
	}
}
