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

type propertyRepository struct {
	BaseRepository
}

func NewPropertyRepository(base BaseRepository) repository.PropertyRepository {
	return &propertyRepository{base}
}

const propertyColumns = `id, user_id, address, type, bedrooms, bathrooms, price, status, created_at`

func (r *propertyRepository) Create(ctx context.Context, property *model.Property) error {
	query := r.Rebind(`
		INSERT INTO properties (id, user_id, address, type, bedrooms, bathrooms, price, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		property.ID,
		property.OwnerID,
		property.Address,
		property.Type,
		property.Bedrooms,
		property.Bathrooms,
		property.Price,
		property.Status,
		property.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

func (r *propertyRepository) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (*model.Property, error) {
	query := r.Rebind(`SELECT ` + propertyColumns + ` FROM properties WHERE id = ? AND user_id = ?`)

	var property model.Property
	if err := r.db.GetContext(ctx, &property, query, id, ownerID); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("property", err)
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &property, nil
}

func (r *propertyRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Property, error) {
	query := r.Rebind(`SELECT ` + propertyColumns + ` FROM properties WHERE user_id = ? ORDER BY created_at DESC`)

	var properties []*model.Property
	if err := r.db.SelectContext(ctx, &properties, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

func (r *propertyRepository) Update(ctx context.Context, property *model.Property) error {
	query := r.Rebind(`
		UPDATE properties
		SET address = ?, type = ?, bedrooms = ?, bathrooms = ?, price = ?, status = ?
		WHERE id = ? AND user_id = ?
	`)

	result, err := r.db.ExecContext(ctx, query,
		property.Address,
		property.Type,
		property.Bedrooms,
		property.Bathrooms,
		property.Price,
		property.Status,
		property.ID,
		property.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("property", nil)
	}
	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	query := r.Rebind(`DELETE FROM properties WHERE id = ? AND user_id = ?`)

	if _, err := r.db.ExecContext(ctx, query, id, ownerID); err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return nil
}

func (r *propertyRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	query := r.Rebind(`SELECT COUNT(*) FROM properties WHERE user_id = ?`)

	var count int
	if err := r.db.GetContext(ctx, &count, query, ownerID); err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return count, nil
}
