package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/avargas/rentals-api/internal/model"
	"github.com/avargas/rentals-api/internal/repository"
	"github.com/avargas/rentals-api/pkg/errors"
)

type tenantRepository struct {
	BaseRepository
}

func NewTenantRepository(base BaseRepository) repository.TenantRepository {
	return &tenantRepository{base}
}

const tenantColumns = `id, user_id, first_name, last_name, email, phone, document, created_at`

func (r *tenantRepository) Create(ctx context.Context, tenant *model.Tenant) error {
	query := r.Rebind(`
		INSERT INTO tenants (id, user_id, first_name, last_name, email, phone, document, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		tenant.ID,
		tenant.OwnerID,
		tenant.FirstName,
		tenant.LastName,
		tenant.Email,
		tenant.Phone,
		tenant.Document,
		tenant.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	return nil
}

func (r *tenantRepository) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (*model.Tenant, error) {
	query := r.Rebind(`SELECT ` + tenantColumns + ` FROM tenants WHERE id = ? AND user_id = ?`)

	var tenant model.Tenant
	if err := r.db.GetContext(ctx, &tenant, query, id, ownerID); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("tenant", err)
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return &tenant, nil
}

func (r *tenantRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Tenant, error) {
	query := r.Rebind(`SELECT ` + tenantColumns + ` FROM tenants WHERE user_id = ? ORDER BY created_at DESC`)

	var tenants []*model.Tenant
	if err := r.db.SelectContext(ctx, &tenants, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return tenants, nil
}

func (r *tenantRepository) Update(ctx context.Context, tenant *model.Tenant) error {
	query := r.Rebind(`
		UPDATE tenants
		SET first_name = ?, last_name = ?, email = ?, phone = ?, document = ?
		WHERE id = ? AND user_id = ?
	`)

	result, err := r.db.ExecContext(ctx, query,
		tenant.FirstName,
		tenant.LastName,
		tenant.Email,
		tenant.Phone,
		tenant.Document,
		tenant.ID,
		tenant.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tenant: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("tenant", nil)
	}
	return nil
}

func (r *tenantRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	query := r.Rebind(`DELETE FROM tenants WHERE id = ? AND user_id = ?`)

	if _, err := r.db.ExecContext(ctx, query, id, ownerID); err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}
	return nil
}

func (r *tenantRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	query := r.Rebind(`SELECT COUNT(*) FROM tenants WHERE user_id = ?`)

	var count int
	if err := r.db.GetContext(ctx, &count, query, ownerID); err != nil {
		return 0, fmt.Errorf("failed to count tenants: %w", err)
	}
	return count, nil
}
