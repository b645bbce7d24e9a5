package middleware

import (
	"crypto/subtle"
	"net/http"

	"career-coach-backend/internal/delivery/http/response"
	"career-coach-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

const CronSecretHeader = "X-Cron-Secret"

// CronSecret guards internal job triggers. An empty secret disables the route.
func CronSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			response.Error(c, http.StatusNotFound, "Not found", nil)
			c.Abort()
			return
		}

		got := c.GetHeader(CronSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			logger.Log.Warn("Rejected internal trigger", "client_ip", c.ClientIP(), "path", c.FullPath())
			response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
