package model

import "github.com/google/uuid"

// Property lifecycle states
const (
	PropertyStatusAvailable = "available"
	PropertyStatusLeased    = "leased"
)

// Property represents a rental property owned by exactly one user.
type Property struct {
	Base
	OwnerID   uuid.UUID `json:"owner_id" db:"user_id"`
	Address   string    `json:"address" db:"address"`
	Type      string    `json:"type" db:"type"`
	Bedrooms  int       `json:"bedrooms" db:"bedrooms"`
	Bathrooms int       `json:"bathrooms" db:"bathrooms"`
	Price     float64   `json:"price" db:"price"`
	Status    string    `json:"status" db:"status"`
}

// CreatePropertyRequest represents property creation parameters
type CreatePropertyRequest struct {
	Address   string  `json:"address" binding:"required"`
	Type      string  `json:"type" binding:"required"`
	Bedrooms  int     `json:"bedrooms" binding:"omitempty,min=0"`
	Bathrooms int     `json:"bathrooms" binding:"omitempty,min=0"`
	Price     float64 `json:"price" binding:"required,gt=0"`
}

// UpdatePropertyRequest represents property update parameters
type UpdatePropertyRequest struct {
	Address   string  `json:"address" binding:"required"`
	Type      string  `json:"type" binding:"required"`
	Bedrooms  int     `json:"bedrooms" binding:"omitempty,min=0"`
	Bathrooms int     `json:"bathrooms" binding:"omitempty,min=0"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	Status    string  `json:"status" binding:"required,oneof=available leased"`
}
