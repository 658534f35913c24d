package quota

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avargas/rentals-api/internal/model"
	"github.com/avargas/rentals-api/internal/repository"
	"github.com/avargas/rentals-api/pkg/errors"
)

type fakePlans struct {
	plan *model.Plan
	err  error
}

func (f *fakePlans) List(ctx context.Context, onlyActive bool) ([]*model.Plan, error) {
	return []*model.Plan{f.plan}, f.err
}

func (f *fakePlans) Get(ctx context.Context, id uuid.UUID) (*model.Plan, error) {
	return f.plan, f.err
}

func (f *fakePlans) GetForUser(ctx context.Context, userID uuid.UUID) (*model.Plan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.plan, nil
}

type fakeCounter struct {
	count int
	err   error
}

func (f *fakeCounter) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	return f.count, f.err
}

func newTestService(plan *model.Plan, properties, tenants, contracts int) (*Service, map[model.EntityKind]*fakeCounter) {
	counters := map[model.EntityKind]*fakeCounter{
		model.EntityProperty: {count: properties},
		model.EntityTenant:   {count: tenants},
		model.EntityContract: {count: contracts},
	}
	svc := NewService(&fakePlans{plan: plan},
		counters[model.EntityProperty], counters[model.EntityTenant], counters[model.EntityContract])
	return svc, counters
}

func basicPlan() *model.Plan {
	return &model.Plan{
		ID:            uuid.New(),
		Name:          "Basic",
		MaxProperties: 5,
		MaxTenants:    10,
		MaxContracts:  15,
		Active:        true,
	}
}

func TestCanCreate(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("allows below cap", func(t *testing.T) {
		svc, _ := newTestService(basicPlan(), 3, 0, 0)

		decision, err := svc.CanCreate(ctx, owner, model.EntityProperty)
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, 2, decision.Remaining)
	})

	t.Run("allows last slot", func(t *testing.T) {
		svc, _ := newTestService(basicPlan(), 4, 0, 0)

		decision, err := svc.CanCreate(ctx, owner, model.EntityProperty)
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, 1, decision.Remaining)
	})

	t.Run("denies at cap", func(t *testing.T) {
		svc, _ := newTestService(basicPlan(), 5, 0, 0)

		decision, err := svc.CanCreate(ctx, owner, model.EntityProperty)
		require.NoError(t, err)
		assert.False(t, decision.Allowed)
		assert.Equal(t, 0, decision.Remaining)
		assert.Contains(t, decision.Reason, "Basic")
		assert.Contains(t, decision.Reason, "5")
	})

	t.Run("denies above cap after downgrade", func(t *testing.T) {
		// Usage above the cap happens when an admin downgrades a plan.
		// Existing rows stay; new creations are denied.
		svc, _ := newTestService(basicPlan(), 9, 0, 0)

		decision, err := svc.CanCreate(ctx, owner, model.EntityProperty)
		require.NoError(t, err)
		assert.False(t, decision.Allowed)
		assert.Equal(t, 0, decision.Remaining)
	})

	t.Run("each kind checks its own cap", func(t *testing.T) {
		svc, _ := newTestService(basicPlan(), 5, 9, 15)

		for kind, wantAllowed := range map[model.EntityKind]bool{
			model.EntityProperty: false,
			model.EntityTenant:   true,
			model.EntityContract: false,
		} {
			decision, err := svc.CanCreate(ctx, owner, kind)
			require.NoError(t, err)
			assert.Equal(t, wantAllowed, decision.Allowed, "kind %s", kind)
		}
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		svc, _ := newTestService(basicPlan(), 0, 0, 0)

		_, err := svc.CanCreate(ctx, owner, model.EntityKind("vehicle"))
		require.Error(t, err)
		assert.Equal(t, errors.ErrValidation, errors.CodeOf(err))
	})

	t.Run("propagates unresolvable plan", func(t *testing.T) {
		svc := NewService(&fakePlans{err: errors.NotFound("plan", nil)},
			&fakeCounter{}, &fakeCounter{}, &fakeCounter{})

		_, err := svc.CanCreate(ctx, owner, model.EntityProperty)
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestUsage(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	svc, _ := newTestService(basicPlan(), 2, 7, 0)

	usage, err := svc.Usage(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "Basic", usage.Plan.Name)
	assert.Equal(t, Used{Used: 2, Cap: 5}, usage.Properties)
	assert.Equal(t, Used{Used: 7, Cap: 10}, usage.Tenants)
	assert.Equal(t, Used{Used: 0, Cap: 15}, usage.Contracts)
}

var _ repository.PlanRepository = (*fakePlans)(nil)
var _ repository.OwnedCounter = (*fakeCounter)(nil)
