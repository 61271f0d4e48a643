package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/condomaster/api/internal/logger"
)

// Logger creates a middleware that logs HTTP requests using structured logging.
// It captures request details, duration, status code, and any errors.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := GetRequestID(c)
		requestLogger := log.WithRequestID(requestID)

		// Stored in the context so handlers log with the same request ID.
		c.Set("logger", requestLogger)

		c.Next()

		duration := time.Since(start)

		fields := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": duration.Milliseconds(),
			"ip":          c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}

		if len(c.Request.URL.RawQuery) > 0 {
			fields["query"] = c.Request.URL.RawQuery
		}

		statusCode := c.Writer.Status()
		switch {
		case statusCode >= 500:
			if len(c.Errors) > 0 {
				fields["errors"] = c.Errors.String()
			}
			requestLogger.Error("Request completed with server error", nil, fields)
		case statusCode >= 400:
			if len(c.Errors) > 0 {
				fields["errors"] = c.Errors.String()
			}
			requestLogger.Warn("Request completed with client error", fields)
		default:
			requestLogger.Info("Request completed", fields)
		}
	}
}

// GetLogger retrieves the logger from the Gin context.
// Returns nil if not found.
func GetLogger(c *gin.Context) *logger.Logger {
	if log, exists := c.Get("logger"); exists {
		if logger, ok := log.(*logger.Logger); ok {
			return logger
		}
	}
	return nil
}
