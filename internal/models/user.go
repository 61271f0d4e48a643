package models

import "time"

// User is an administrative account able to log into the system.
type User struct {
	ID           EntityID   `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}
