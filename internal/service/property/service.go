package property

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/avargas/rentals-api/internal/model"
	"github.com/avargas/rentals-api/internal/repository"
	"github.com/avargas/rentals-api/internal/service/quota"
	"github.com/avargas/rentals-api/pkg/errors"
)

type PropertyService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *model.CreatePropertyRequest) (*model.Property, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Property, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*model.Property, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, req *model.UpdatePropertyRequest) (*model.Property, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type Service struct {
	repo  repository.PropertyRepository
	quota quota.Guard
}

func NewService(repo repository.PropertyRepository, guard quota.Guard) *Service {
	return &Service{repo: repo, quota: guard}
}

// Create checks the owner's plan quota and inserts a new property in the
// available state.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *model.CreatePropertyRequest) (*model.Property, error) {
	decision, err := s.quota.CanCreate(ctx, ownerID, model.EntityProperty)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, errors.QuotaExceeded(decision.Reason)
	}

	property := &model.Property{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		OwnerID:   ownerID,
		Address:   req.Address,
		Type:      req.Type,
		Bedrooms:  req.Bedrooms,
		Bathrooms: req.Bathrooms,
		Price:     req.Price,
		Status:    model.PropertyStatusAvailable,
	}

	if err := s.repo.Create(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Property, error) {
	return s.repo.GetForOwner(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*model.Property, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, req *model.UpdatePropertyRequest) (*model.Property, error) {
	property, err := s.repo.GetForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	property.Address = req.Address
	property.Type = req.Type
	property.Bedrooms = req.Bedrooms
	property.Bathrooms = req.Bathrooms
	property.Price = req.Price
	property.Status = req.Status

	if err := s.repo.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Delete(ctx, ownerID, id)
}
