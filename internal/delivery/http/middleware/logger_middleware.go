package middleware

import (
	"time"

	"career-coach-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		reqID, _ := c.Get("RequestID")
		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"request_id", reqID,
		}

		switch {
		case status >= 500:
			logger.Log.Error("request", attrs...)
		case status >= 400:
			logger.Log.Warn("request", attrs...)
		default:
			logger.Log.Info("request", attrs...)
		}
	}
}
