package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/condomaster/api/internal/auth"
	"github.com/condomaster/api/internal/config"
	"github.com/condomaster/api/internal/logger"
	"github.com/condomaster/api/internal/models"
	"github.com/condomaster/api/internal/repository"
)

// ErrInvalidCredentials is returned for any login failure. The cause
// (unknown email or wrong password) is deliberately not distinguished.
var ErrInvalidCredentials = errors.New("invalid credentials")

// LoginResult carries the issued token and the authenticated account.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthService defines the interface for authentication business logic.
type AuthService interface {
	// Login verifies credentials and issues a signed token.
	// Returns ErrInvalidCredentials on any mismatch.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// EnsureAdmin reconciles the administrator account from
	// configuration: it is created on first startup and its credential
	// refreshed whenever the configured password changes.
	EnsureAdmin(ctx context.Context, cfg config.AuthConfig) error
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	log    *logger.Logger
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, log *logger.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		log:    log,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if user == nil {
		s.log.Warn("Login attempt for unknown email", map[string]interface{}{
			"email": email,
		})
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("Login attempt with wrong password", map[string]interface{}{
			"email": email,
		})
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// A stale login stamp is not worth failing the login over.
		s.log.Warn("Failed to stamp last login", map[string]interface{}{
			"email": email,
		})
	}
	user.LastLogin = &now

	s.log.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	return &LoginResult{Token: token, User: user}, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, cfg config.AuthConfig) error {
	existing, err := s.users.GetByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		return fmt.Errorf("failed to query admin account: %w", err)
	}

	if existing == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		admin := &models.User{
			ID:           models.EntityID(uuid.New().String()),
			Name:         cfg.AdminName,
			Email:        cfg.AdminEmail,
			PasswordHash: string(hash),
			Role:         "admin",
		}
		if err := s.users.Create(ctx, admin); err != nil {
			return fmt.Errorf("failed to create admin account: %w", err)
		}

		s.log.Info("Admin account created", map[string]interface{}{
			"email": cfg.AdminEmail,
		})
		return nil
	}

	// Rotating ADMIN_PASSWORD in the environment takes effect on the
	// next startup.
	if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(cfg.AdminPassword)) != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		if err := s.users.UpdatePasswordHash(ctx, existing.ID, string(hash)); err != nil {
			return fmt.Errorf("failed to refresh admin credential: %w", err)
		}

		s.log.Info("Admin credential refreshed", map[string]interface{}{
			"email": cfg.AdminEmail,
		})
	}

	return nil
}
