package model

import "github.com/google/uuid"

// Plan is a subscription tier. Plans are seeded at initialization and
// read-only during normal operation.
type Plan struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	MaxProperties int       `json:"max_properties" db:"max_properties"`
	MaxTenants    int       `json:"max_tenants" db:"max_tenants"`
	MaxContracts  int       `json:"max_contracts" db:"max_contracts"`
	Price         float64   `json:"price" db:"price"`
	Description   string    `json:"description" db:"description"`
	Active        bool      `json:"active" db:"is_active"`
}

// CapFor returns the plan cap for the given entity kind.
func (p *Plan) CapFor(kind EntityKind) int {
	switch kind {
	case EntityProperty:
		return p.MaxProperties
	case EntityTenant:
		return p.MaxTenants
	case EntityContract:
		return p.MaxContracts
	}
	return 0
}
