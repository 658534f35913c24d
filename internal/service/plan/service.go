package plan

import (
	"context"

	"github.com/google/uuid"

	"github.com/avargas/rentals-api/internal/model"
	"github.com/avargas/rentals-api/internal/repository"
)

type PlanService interface {
	ListActive(ctx context.Context) ([]*model.Plan, error)
	ListAll(ctx context.Context) ([]*model.Plan, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Plan, error)
}

type Service struct {
	repo repository.PlanRepository
}

func NewService(repo repository.PlanRepository) *Service {
	return &Service{repo: repo}
}

// ListActive returns the plans offered at registration.
func (s *Service) ListActive(ctx context.Context) ([]*model.Plan, error) {
	return s.repo.List(ctx, true)
}

// ListAll includes retired plans; admin-only.
func (s *Service) ListAll(ctx context.Context) ([]*model.Plan, error) {
	return s.repo.List(ctx, false)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Plan, error) {
	return s.repo.Get(ctx, id)
}
