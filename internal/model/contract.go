package model

import (
	"time"

	"github.com/google/uuid"
)

// Contract states. Only "active" couples the contract to its property's
// lifecycle; the terminal states are reachable via explicit edit.
const (
	ContractStatusActive     = "active"
	ContractStatusTerminated = "terminated"
	ContractStatusExpired    = "expired"
)

// DateLayout is the wire format for contract dates.
const DateLayout = "2006-01-02"

// Contract is a lease agreement linking one property and one tenant,
// all three owned by the same user.
type Contract struct {
	Base
	OwnerID      uuid.UUID `json:"owner_id" db:"user_id"`
	PropertyID   uuid.UUID `json:"property_id" db:"property_id"`
	TenantID     uuid.UUID `json:"tenant_id" db:"tenant_id"`
	StartDate    time.Time `json:"start_date" db:"start_date"`
	EndDate      time.Time `json:"end_date" db:"end_date"`
	MonthlyPrice float64   `json:"monthly_price" db:"monthly_price"`
	Status       string    `json:"status" db:"status"`
}

// ContractWithDetails is a contract row joined with its property address
// and tenant name for list views.
type ContractWithDetails struct {
	Contract
	PropertyAddress string `json:"property_address" db:"property_address"`
	TenantName      string `json:"tenant_name" db:"tenant_name"`
}

// CreateContractRequest represents contract creation parameters.
// The laterdate rule is registered at router setup.
type CreateContractRequest struct {
	PropertyID   uuid.UUID `json:"property_id" binding:"required"`
	TenantID     uuid.UUID `json:"tenant_id" binding:"required"`
	StartDate    string    `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate      string    `json:"end_date" binding:"required,datetime=2006-01-02,laterdate=StartDate"`
	MonthlyPrice float64   `json:"monthly_price" binding:"required,gt=0"`
}

// UpdateContractRequest represents contract update parameters. Changing the
// state here never cascades to the linked property.
type UpdateContractRequest struct {
	StartDate    string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate      string  `json:"end_date" binding:"required,datetime=2006-01-02,laterdate=StartDate"`
	MonthlyPrice float64 `json:"monthly_price" binding:"required,gt=0"`
	Status       string  `json:"status" binding:"required,oneof=active terminated expired"`
}
