package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/condomaster/api/internal/errors"
	"github.com/condomaster/api/internal/services"
)

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	service services.AuthService
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(service services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.Unauthorized(c, "Invalid email or password")
			return
		}
		apierrors.InternalServerError(c, "Failed to process login", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
