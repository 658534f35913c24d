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

type planRepository struct {
	BaseRepository
}

func NewPlanRepository(base BaseRepository) repository.PlanRepository {
	return &planRepository{base}
}

const planColumns = `id, name, max_properties, max_tenants, max_contracts, price, description, is_active`

func (r *planRepository) List(ctx context.Context, onlyActive bool) ([]*model.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans`
	if onlyActive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY price`

	var plans []*model.Plan
	if err := r.db.SelectContext(ctx, &plans, query); err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

func (r *planRepository) Get(ctx context.Context, id uuid.UUID) (*model.Plan, error) {
	query := r.Rebind(`SELECT ` + planColumns + ` FROM plans WHERE id = ?`)

	var plan model.Plan
	if err := r.db.GetContext(ctx, &plan, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("plan", err)
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return &plan, nil
}

func (r *planRepository) GetForUser(ctx context.Context, userID uuid.UUID) (*model.Plan, error) {
	query := r.Rebind(`
		SELECT p.id, p.name, p.max_properties, p.max_tenants, p.max_contracts, p.price, p.description, p.is_active
		FROM plans p
		JOIN users u ON u.plan_id = p.id
		WHERE u.id = ?
	`)

	var plan model.Plan
	if err := r.db.GetContext(ctx, &plan, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("plan", err)
		}
		return nil, fmt.Errorf("failed to resolve user plan: %w", err)
	}
	return &plan, nil
}
