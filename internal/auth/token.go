// Package auth issues and verifies the signed tokens that protect the API.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/condomaster/api/internal/models"
)

// Claims is the JWT payload carried by every authenticated request.
type Claims struct {
	UserID string `json:"uid"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

var (
	// ErrInvalidToken is returned when a token fails signature or claim validation.
	ErrInvalidToken = errors.New("invalid token")
)

// TokenManager signs and parses HS256 tokens with a shared secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager. ttlHours controls how long
// issued tokens stay valid.
func NewTokenManager(secret string, ttlHours int) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    time.Duration(ttlHours) * time.Hour,
	}
}

// Issue creates a signed token for the given user.
func (m *TokenManager) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID.String(),
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates a signed token and returns its claims.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
