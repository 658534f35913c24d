// Package account implements the administrative account operations:
// listing accounts, toggling the active flag and reassigning plans.
package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/avargas/rentals-api/internal/model"
	"github.com/avargas/rentals-api/internal/repository"
	"github.com/avargas/rentals-api/pkg/errors"
)

type AccountService interface {
	List(ctx context.Context) ([]*model.User, error)
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateAccountRequest) (*model.User, error)
}

type Service struct {
	users repository.UserRepository
	plans repository.PlanRepository
}

func NewService(users repository.UserRepository, plans repository.PlanRepository) *Service {
	return &Service{users: users, plans: plans}
}

func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	return s.users.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.Get(ctx, id)
}

// Update applies the active flag and plan assignment. Downgrading below
// current usage is allowed; existing rows are never reconciled, quota
// checks only gate future creation.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAccountRequest) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PlanID != nil {
		plan, err := s.plans.Get(ctx, *req.PlanID)
		if err != nil {
			if errors.IsNotFound(err) {
				return nil, errors.Validation("unknown plan", err)
			}
			return nil, err
		}
		user.PlanID = plan.ID
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
