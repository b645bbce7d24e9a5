package middleware

import (
	"errors"
	"net/http"

	"career-coach-backend/internal/delivery/http/response"
	"career-coach-backend/pkg/apperror"
	"career-coach-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error(appErr.Message, "path", c.FullPath(), "error", appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		// Never expose internal error details to clients.
		logger.Log.Error("Internal Server Error", "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
