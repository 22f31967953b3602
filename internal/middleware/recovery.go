package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"moving-progress/pkg/response"
)

// Recovery turns a handler panic into a logged 500.
func (m Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				m.l.Errorf(c.Request.Context(), "middleware.Recovery: %s %s: panic: %v\n%s",
					c.Request.Method, c.Request.URL.Path, r, debug.Stack())
				response.InternalError(c, nil)
				c.Abort()
			}
		}()
		c.Next()
	}
}
