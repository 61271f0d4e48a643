package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/condomaster/api/internal/database"
	"github.com/condomaster/api/internal/models"
)

// UserRepository defines the interface for administrative account data access.
type UserRepository interface {
	// GetByEmail returns the account with the given email.
	// Returns nil, nil if none exists.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	Create(ctx context.Context, user *models.User) error

	// UpdatePasswordHash replaces the stored credential for an account.
	UpdatePasswordHash(ctx context.Context, id models.EntityID, passwordHash string) error

	// UpdateLastLogin stamps a successful login.
	UpdateLastLogin(ctx context.Context, id models.EntityID, at time.Time) error
}

type userRepository struct {
	db *database.Database
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *database.Database) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, last_login
		FROM users
		WHERE email = $1
	`

	var user models.User
	var id string

	err := r.db.Pool.QueryRow(ctx, query, email).Scan(
		&id,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.LastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	user.ID = models.EntityID(id)
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, last_login)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		string(user.ID),
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.LastLogin,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user %s: %w", user.Email, err)
	}

	return nil
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id models.EntityID, passwordHash string) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE users SET password_hash = $2 WHERE id = $1`,
		string(id), passwordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to update password for user %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id models.EntityID, at time.Time) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE users SET last_login = $2 WHERE id = $1`,
		string(id), at,
	)
	if err != nil {
		return fmt.Errorf("failed to update last login for user %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
