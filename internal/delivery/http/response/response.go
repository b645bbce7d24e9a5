package response

import (
	"github.com/gin-gonic/gin"
)

// Response is the envelope of every API reply. Data is always present so
// clients can distinguish "nothing saved yet" (null) from a missing field.
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Error     any    `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func Success(c *gin.Context, code int, message string, data any) {
	write(c, code, Response{Success: true, Message: message, Data: data})
}

func Error(c *gin.Context, code int, message string, err any) {
	write(c, code, Response{Success: false, Message: message, Error: err})
}

func write(c *gin.Context, code int, body Response) {
	if reqID, ok := c.Get("RequestID"); ok {
		body.RequestID, _ = reqID.(string)
	}
	c.JSON(code, body)
}
