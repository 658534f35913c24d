package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/avargas/rentals-api/internal/model"
	"github.com/avargas/rentals-api/internal/repository"
	"github.com/avargas/rentals-api/pkg/errors"
)

type contractRepository struct {
	BaseRepository
}

func NewContractRepository(base BaseRepository) repository.ContractRepository {
	return &contractRepository{base}
}

const contractColumns = `id, user_id, property_id, tenant_id, start_date, end_date, monthly_price, status, created_at`

func (r *contractRepository) CreateActive(ctx context.Context, contract *model.Contract) error {
	insert := r.Rebind(`
		INSERT INTO contracts (id, user_id, property_id, tenant_id, start_date, end_date, monthly_price, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	lease := r.Rebind(`
		UPDATE properties SET status = ? WHERE id = ? AND user_id = ? AND status = ?
	`)

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, insert,
			contract.ID,
			contract.OwnerID,
			contract.PropertyID,
			contract.TenantID,
			contract.StartDate,
			contract.EndDate,
			contract.MonthlyPrice,
			contract.Status,
			contract.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to create contract: %w", err)
		}

		// Flipping the property is guarded on its current state, which also
		// rules out a second active contract on the same property.
		result, err := tx.ExecContext(ctx, lease,
			model.PropertyStatusLeased,
			contract.PropertyID,
			contract.OwnerID,
			model.PropertyStatusAvailable,
		)
		if err != nil {
			return fmt.Errorf("failed to mark property leased: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return errors.Validation("property is not available", nil)
		}
		return nil
	})
}

func (r *contractRepository) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (*model.Contract, error) {
	query := r.Rebind(`SELECT ` + contractColumns + ` FROM contracts WHERE id = ? AND user_id = ?`)

	var contract model.Contract
	if err := r.db.GetContext(ctx, &contract, query, id, ownerID); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("contract", err)
		}
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	return &contract, nil
}

func (r *contractRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.ContractWithDetails, error) {
	query := r.Rebind(`
		SELECT c.id, c.user_id, c.property_id, c.tenant_id, c.start_date, c.end_date, c.monthly_price, c.status, c.created_at,
		       p.address AS property_address,
		       t.first_name || ' ' || t.last_name AS tenant_name
		FROM contracts c
		JOIN properties p ON p.id = c.property_id
		JOIN tenants t ON t.id = c.tenant_id
		WHERE c.user_id = ?
		ORDER BY c.created_at DESC
	`)

	var contracts []*model.ContractWithDetails
	if err := r.db.SelectContext(ctx, &contracts, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

// Update changes dates, price and state only. It deliberately does not
// touch the linked property's state.
func (r *contractRepository) Update(ctx context.Context, contract *model.Contract) error {
	query := r.Rebind(`
		UPDATE contracts
		SET start_date = ?, end_date = ?, monthly_price = ?, status = ?
		WHERE id = ? AND user_id = ?
	`)

	result, err := r.db.ExecContext(ctx, query,
		contract.StartDate,
		contract.EndDate,
		contract.MonthlyPrice,
		contract.Status,
		contract.ID,
		contract.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contract: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("contract", nil)
	}
	return nil
}

func (r *contractRepository) DeleteAndRelease(ctx context.Context, ownerID, id uuid.UUID) error {
	lookup := r.Rebind(`SELECT property_id FROM contracts WHERE id = ? AND user_id = ?`)
	remove := r.Rebind(`DELETE FROM contracts WHERE id = ? AND user_id = ?`)
	release := r.Rebind(`UPDATE properties SET status = ? WHERE id = ? AND user_id = ?`)

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var propertyID uuid.UUID
		if err := tx.GetContext(ctx, &propertyID, lookup, id, ownerID); err != nil {
			if err == sql.ErrNoRows {
				return nil
			}
			return fmt.Errorf("failed to look up contract: %w", err)
		}

		if _, err := tx.ExecContext(ctx, remove, id, ownerID); err != nil {
			return fmt.Errorf("failed to delete contract: %w", err)
		}

		// The property may already be gone; releasing zero rows is fine.
		if _, err := tx.ExecContext(ctx, release, model.PropertyStatusAvailable, propertyID, ownerID); err != nil {
			return fmt.Errorf("failed to release property: %w", err)
		}
		return nil
	})
}

func (r *contractRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	query := r.Rebind(`SELECT COUNT(*) FROM contracts WHERE user_id = ?`)

	var count int
	if err := r.db.GetContext(ctx, &count, query, ownerID); err != nil {
		return 0, fmt.Errorf("failed to count contracts: %w", err)
	}
	return count, nil
}
