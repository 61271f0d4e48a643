package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/condomaster/api/internal/auth"
)

// ClaimsKey is the context key for the authenticated user's claims.
const ClaimsKey = "claims"

// Authenticate creates a middleware that requires a valid Bearer token.
// On success the token claims are stored in the Gin context for handlers.
func Authenticate(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c, "Missing Authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(c, "Authorization header must be a Bearer token")
			return
		}

		claims, err := tm.Parse(parts[1])
		if err != nil {
			unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// GetClaims retrieves the authenticated user's claims from the Gin context.
// Returns nil if the request was not authenticated.
func GetClaims(c *gin.Context) *auth.Claims {
	if value, exists := c.Get(ClaimsKey); exists {
		if claims, ok := value.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":       "UNAUTHORIZED",
			"message":    message,
			"request_id": GetRequestID(c),
		},
	})
}
