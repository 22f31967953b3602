package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"moving-progress/pkg/log"
)

const HeaderRequestID = "X-Request-ID"

// RequestID tags each request with an id, reusing the caller's when given,
// and carries it into the logger context as the trace id.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(log.WithTraceID(c.Request.Context(), id))
		c.Next()
	}
}
