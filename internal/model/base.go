package model

import (
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all owned entities
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// EntityKind identifies an entity type bounded by plan quotas.
type EntityKind string

const (
	EntityProperty EntityKind = "property"
	EntityTenant   EntityKind = "tenant"
	EntityContract EntityKind = "contract"
)
