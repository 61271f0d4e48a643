package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/condomaster/api/internal/logger"
)

// Recovery creates a middleware that recovers from panics and logs them.
// It returns a 500 Internal Server Error response instead of crashing.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()
				requestID := GetRequestID(c)

				requestLogger := GetLogger(c)
				if requestLogger == nil {
					requestLogger = log
				}

				requestLogger.Error(
					"Panic recovered",
					fmt.Errorf("panic: %v", err),
					map[string]interface{}{
						"request_id": requestID,
						"method":     c.Request.Method,
						"path":       c.Request.URL.Path,
						"stack":      string(stack),
					},
				)

				c.JSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{
						"code":       "INTERNAL_SERVER_ERROR",
						"message":    "An unexpected error occurred",
						"request_id": requestID,
					},
				})

				c.Abort()
			}
		}()

		c.Next()
	}
}
