package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/avargas/rentals-api/internal/model"
)

// OwnedCounter counts rows of one entity type belonging to an owner.
// The quota guard consumes one counter per guarded entity kind.
type OwnedCounter interface {
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}

type PlanRepository interface {
	List(ctx context.Context, onlyActive bool) ([]*model.Plan, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Plan, error)
	// GetForUser resolves the plan assigned to a user.
	GetForUser(ctx context.Context, userID uuid.UUID) (*model.Plan, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetActiveByUsername resolves an active user for login.
	GetActiveByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, user *model.User) error
	TouchLastAccess(ctx context.Context, id uuid.UUID) error
}

// PropertyRepository persists properties. Every read, update and delete is
// owner-scoped in the query itself: an id that exists under another owner
// behaves exactly like an absent id.
type PropertyRepository interface {
	OwnedCounter
	Create(ctx context.Context, property *model.Property) error
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (*model.Property, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Property, error)
	Update(ctx context.Context, property *model.Property) error
	// Delete is a no-op when the row is absent or not owned.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type TenantRepository interface {
	OwnedCounter
	Create(ctx context.Context, tenant *model.Tenant) error
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (*model.Tenant, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Tenant, error)
	Update(ctx context.Context, tenant *model.Tenant) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type ContractRepository interface {
	OwnedCounter
	// CreateActive inserts the contract and marks its property leased in a
	// single transaction. Fails if the property is not currently available.
	CreateActive(ctx context.Context, contract *model.Contract) error
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (*model.Contract, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.ContractWithDetails, error)
	Update(ctx context.Context, contract *model.Contract) error
	// DeleteAndRelease removes the contract and sets its property back to
	// available in a single transaction. No-op when the contract is absent;
	// the property update is skipped silently if the property is gone.
	DeleteAndRelease(ctx context.Context, ownerID, id uuid.UUID) error
}
