package model

import "github.com/google/uuid"

// Tenant represents a renter record owned by exactly one user.
type Tenant struct {
	Base
	OwnerID   uuid.UUID `json:"owner_id" db:"user_id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Document  string    `json:"document" db:"document"`
}

// CreateTenantRequest represents tenant creation parameters
type CreateTenantRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	Document  string `json:"document" binding:"required"`
}

// UpdateTenantRequest represents tenant update parameters
type UpdateTenantRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	Document  string `json:"document" binding:"required"`
}
