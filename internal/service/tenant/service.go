package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/avargas/rentals-api/internal/model"
	"github.com/avargas/rentals-api/internal/repository"
	"github.com/avargas/rentals-api/internal/service/quota"
	"github.com/avargas/rentals-api/pkg/errors"
)

type TenantService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *model.CreateTenantRequest) (*model.Tenant, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Tenant, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*model.Tenant, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, req *model.UpdateTenantRequest) (*model.Tenant, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type Service struct {
	repo  repository.TenantRepository
	quota quota.Guard
}

func NewService(repo repository.TenantRepository, guard quota.Guard) *Service {
	return &Service{repo: repo, quota: guard}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *model.CreateTenantRequest) (*model.Tenant, error) {
	decision, err := s.quota.CanCreate(ctx, ownerID, model.EntityTenant)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, errors.QuotaExceeded(decision.Reason)
	}

	tenant := &model.Tenant{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		OwnerID:   ownerID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Document:  req.Document,
	}

	if err := s.repo.Create(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Tenant, error) {
	return s.repo.GetForOwner(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*model.Tenant, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, req *model.UpdateTenantRequest) (*model.Tenant, error) {
	tenant, err := s.repo.GetForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	tenant.FirstName = req.FirstName
	tenant.LastName = req.LastName
	tenant.Email = req.Email
	tenant.Phone = req.Phone
	tenant.Document = req.Document

	if err := s.repo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Delete(ctx, ownerID, id)
}
