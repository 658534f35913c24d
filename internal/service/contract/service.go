// Package contract implements the lease lifecycle. Creating a contract
// leases its property, deleting it releases the property; both pairs of
// writes commit atomically.
package contract

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/avargas/rentals-api/internal/model"
	"github.com/avargas/rentals-api/internal/repository"
	"github.com/avargas/rentals-api/internal/service/quota"
	"github.com/avargas/rentals-api/pkg/errors"
)

type ContractService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *model.CreateContractRequest) (*model.Contract, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Contract, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*model.ContractWithDetails, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, req *model.UpdateContractRequest) (*model.Contract, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type Service struct {
	contracts  repository.ContractRepository
	properties repository.PropertyRepository
	tenants    repository.TenantRepository
	quota      quota.Guard
}

func NewService(contracts repository.ContractRepository, properties repository.PropertyRepository,
	tenants repository.TenantRepository, guard quota.Guard) *Service {
	return &Service{
		contracts:  contracts,
		properties: properties,
		tenants:    tenants,
		quota:      guard,
	}
}

// Create inserts an active contract and marks the property leased in one
// transaction. The property and tenant must belong to the owner; the
// property must be available.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *model.CreateContractRequest) (*model.Contract, error) {
	decision, err := s.quota.CanCreate(ctx, ownerID, model.EntityContract)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, errors.QuotaExceeded(decision.Reason)
	}

	property, err := s.properties.GetForOwner(ctx, ownerID, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if property.Status != model.PropertyStatusAvailable {
		return nil, errors.Validation("property is not available", nil)
	}

	if _, err := s.tenants.GetForOwner(ctx, ownerID, req.TenantID); err != nil {
		return nil, err
	}

	start, end, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	contract := &model.Contract{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		OwnerID:      ownerID,
		PropertyID:   req.PropertyID,
		TenantID:     req.TenantID,
		StartDate:    start,
		EndDate:      end,
		MonthlyPrice: req.MonthlyPrice,
		Status:       model.ContractStatusActive,
	}

	if err := s.contracts.CreateActive(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Contract, error) {
	return s.contracts.GetForOwner(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*model.ContractWithDetails, error) {
	return s.contracts.ListByOwner(ctx, ownerID)
}

// Update changes dates, price and state. It never cascades to the linked
// property, even when the state moves to or from active.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, req *model.UpdateContractRequest) (*model.Contract, error) {
	contract, err := s.contracts.GetForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	start, end, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	contract.StartDate = start
	contract.EndDate = end
	contract.MonthlyPrice = req.MonthlyPrice
	contract.Status = req.Status

	if err := s.contracts.Update(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// Delete removes the contract and releases its property atomically. A
// missing or foreign contract is a no-op.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.contracts.DeleteAndRelease(ctx, ownerID, id)
}

func parseDates(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(model.DateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Validation("invalid start date", err)
	}
	end, err := time.Parse(model.DateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Validation("invalid end date", err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, errors.Validation("end date must be after start date", nil)
	}
	return start, end, nil
}
