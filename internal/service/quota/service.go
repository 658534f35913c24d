// Package quota implements the plan-quota guard: a pure decision function
// bounding entity creation by the caps of the owner's subscription plan.
package quota

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/avargas/rentals-api/internal/model"
	"github.com/avargas/rentals-api/internal/repository"
	"github.com/avargas/rentals-api/pkg/errors"
)

// Decision is the outcome of a quota check.
type Decision struct {
	Allowed   bool   `json:"allowed"`
	Remaining int    `json:"remaining"`
	Reason    string `json:"reason"`
}

// Used pairs current usage with the plan cap for one entity kind.
type Used struct {
	Used int `json:"used"`
	Cap  int `json:"cap"`
}

// Usage is the per-kind usage summary for an owner, as shown on the
// dashboard.
type Usage struct {
	Plan       *model.Plan `json:"plan"`
	Properties Used        `json:"properties"`
	Tenants    Used        `json:"tenants"`
	Contracts  Used        `json:"contracts"`
}

// Guard is the decision surface consumed by the entity services.
type Guard interface {
	CanCreate(ctx context.Context, ownerID uuid.UUID, kind model.EntityKind) (*Decision, error)
}

type Service struct {
	plans    repository.PlanRepository
	counters map[model.EntityKind]repository.OwnedCounter
}

func NewService(plans repository.PlanRepository, properties, tenants, contracts repository.OwnedCounter) *Service {
	return &Service{
		plans: plans,
		counters: map[model.EntityKind]repository.OwnedCounter{
			model.EntityProperty: properties,
			model.EntityTenant:   tenants,
			model.EntityContract: contracts,
		},
	}
}

// CanCreate decides whether the owner may create one more entity of the
// given kind. It has no side effects; callers re-invoke it at the moment
// of insertion.
func (s *Service) CanCreate(ctx context.Context, ownerID uuid.UUID, kind model.EntityKind) (*Decision, error) {
	counter, ok := s.counters[kind]
	if !ok {
		return nil, errors.Validation(fmt.Sprintf("unknown entity kind %q", kind), nil)
	}

	plan, err := s.plans.GetForUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	count, err := counter.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	cap := plan.CapFor(kind)
	remaining := cap - count
	if remaining < 0 {
		remaining = 0
	}

	if count >= cap {
		return &Decision{
			Allowed:   false,
			Remaining: 0,
			Reason:    fmt.Sprintf("the %s plan allows at most %d %s records", plan.Name, cap, kind),
		}, nil
	}

	return &Decision{
		Allowed:   true,
		Remaining: remaining,
		Reason:    fmt.Sprintf("%d more %s records available", remaining, kind),
	}, nil
}

// Usage reports current usage against the owner's plan caps.
func (s *Service) Usage(ctx context.Context, ownerID uuid.UUID) (*Usage, error) {
	plan, err := s.plans.GetForUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	usage := &Usage{Plan: plan}
	for kind, out := range map[model.EntityKind]*Used{
		model.EntityProperty: &usage.Properties,
		model.EntityTenant:   &usage.Tenants,
		model.EntityContract: &usage.Contracts,
	} {
		count, err := s.counters[kind].CountByOwner(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		out.Used = count
		out.Cap = plan.CapFor(kind)
	}
	return usage, nil
}
