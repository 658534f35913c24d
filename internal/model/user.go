package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account. All properties, tenants and contracts are
// partitioned by the owning user.
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FirstName    string     `json:"first_name" db:"first_name"`
	LastName     string     `json:"last_name" db:"last_name"`
	PlanID       uuid.UUID  `json:"plan_id" db:"plan_id"`
	Admin        bool       `json:"admin" db:"is_admin"`
	Active       bool       `json:"active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	LastAccessAt *time.Time `json:"last_access_at" db:"last_access_at"`
}

// RegisterRequest represents registration parameters
type RegisterRequest struct {
	Username        string    `json:"username" binding:"required,min=3,max=64"`
	Email           string    `json:"email" binding:"required,email"`
	Password        string    `json:"password" binding:"required,min=6"`
	ConfirmPassword string    `json:"confirm_password" binding:"required"`
	FirstName       string    `json:"first_name" binding:"required"`
	LastName        string    `json:"last_name" binding:"required"`
	PlanID          uuid.UUID `json:"plan_id" binding:"required"`
}

// LoginRequest represents login parameters
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateAccountRequest represents the admin-side account update parameters.
// Assigning a plan below current usage is allowed; quota checks only apply
// at creation time.
type UpdateAccountRequest struct {
	Active *bool      `json:"active"`
	PlanID *uuid.UUID `json:"plan_id"`
}
