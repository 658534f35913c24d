package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/avargas/rentals-api/internal/config"
	"github.com/avargas/rentals-api/internal/model"
	"github.com/avargas/rentals-api/pkg/errors"
)

type hashEcho struct{}

func (hashEcho) Hash(password string) (string, error) { return "hash:" + password, nil }

func (hashEcho) Compare(hashedPassword, password string) error { return nil }

func setupDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(db))
	require.NoError(t, Seed(context.Background(), db, hashEcho{}, config.AdminSeed{
		Username: "admin",
		Email:    "admin@rentals.local",
		Password: "admin123",
	}))
	return db
}

func createUser(t *testing.T, db *sqlx.DB, username string) *model.User {
	t.Helper()

	users := NewUserRepository(NewBaseRepository(db))
	user := &model.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "Owner",
		PlanID:    PlanBasicID,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func newProperty(owner uuid.UUID, address string, createdAt time.Time) *model.Property {
	return &model.Property{
		Base:     model.Base{ID: uuid.New(), CreatedAt: createdAt},
		OwnerID:  owner,
		Address:  address,
		Type:     "apartment",
		Bedrooms: 2,
		Price:    950,
		Status:   model.PropertyStatusAvailable,
	}
}

func newTenant(owner uuid.UUID, first, last string) *model.Tenant {
	return &model.Tenant{
		Base:      model.Base{ID: uuid.New(), CreatedAt: time.Now().UTC()},
		OwnerID:   owner,
		FirstName: first,
		LastName:  last,
		Document:  "X1234567",
	}
}

func TestMigrateAndSeed(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	// Running both again must change nothing.
	require.NoError(t, Migrate(db))
	require.NoError(t, Seed(ctx, db, hashEcho{}, config.AdminSeed{
		Username: "someone-else",
		Email:    "other@rentals.local",
		Password: "other",
	}))

	plans := NewPlanRepository(NewBaseRepository(db))
	all, err := plans.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)

	basic, err := plans.Get(ctx, PlanBasicID)
	require.NoError(t, err)
	assert.Equal(t, "Basic", basic.Name)
	assert.Equal(t, 5, basic.MaxProperties)
	assert.Equal(t, 10, basic.MaxTenants)
	assert.Equal(t, 15, basic.MaxContracts)
	assert.Equal(t, 0.0, basic.Price)

	users := NewUserRepository(NewBaseRepository(db))
	admin, err := users.Get(ctx, AdminUserID)
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
	assert.True(t, admin.Admin)
	assert.True(t, admin.Active)
	assert.Equal(t, PlanEnterpriseID, admin.PlanID)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	users := NewUserRepository(NewBaseRepository(db))

	t.Run("duplicate username", func(t *testing.T) {
		first := createUser(t, db, "dup")

		err := users.Create(ctx, &model.User{
			ID:        uuid.New(),
			Username:  first.Username,
			Email:     "unique@example.com",
			PlanID:    PlanBasicID,
			Active:    true,
			CreatedAt: time.Now().UTC(),
		})
		require.Error(t, err)
		assert.True(t, errors.IsDuplicate(err))
	})

	t.Run("duplicate email", func(t *testing.T) {
		createUser(t, db, "emaildup")

		err := users.Create(ctx, &model.User{
			ID:        uuid.New(),
			Username:  "unique-handle",
			Email:     "emaildup@example.com",
			PlanID:    PlanBasicID,
			Active:    true,
			CreatedAt: time.Now().UTC(),
		})
		require.Error(t, err)
		assert.True(t, errors.IsDuplicate(err))
	})

	t.Run("login lookup skips inactive accounts", func(t *testing.T) {
		user := createUser(t, db, "inactive")
		user.Active = false
		require.NoError(t, users.Update(ctx, user))

		_, err := users.GetActiveByUsername(ctx, "inactive")
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("touch last access", func(t *testing.T) {
		user := createUser(t, db, "toucher")
		require.Nil(t, user.LastAccessAt)

		require.NoError(t, users.TouchLastAccess(ctx, user.ID))

		got, err := users.Get(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, got.LastAccessAt)
	})

	t.Run("update missing account", func(t *testing.T) {
		err := users.Update(ctx, &model.User{ID: uuid.New(), PlanID: PlanBasicID})
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestPropertyRepository(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	properties := NewPropertyRepository(NewBaseRepository(db))
	owner := createUser(t, db, "owner")
	other := createUser(t, db, "other")

	t.Run("create and get", func(t *testing.T) {
		p := newProperty(owner.ID, "Calle Mayor 1", time.Now().UTC())
		require.NoError(t, properties.Create(ctx, p))

		got, err := properties.GetForOwner(ctx, owner.ID, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.Address, got.Address)
		assert.Equal(t, model.PropertyStatusAvailable, got.Status)
	})

	t.Run("foreign owner behaves like absent", func(t *testing.T) {
		p := newProperty(owner.ID, "Calle Sol 2", time.Now().UTC())
		require.NoError(t, properties.Create(ctx, p))

		_, err := properties.GetForOwner(ctx, other.ID, p.ID)
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))

		_, err = properties.GetForOwner(ctx, owner.ID, uuid.New())
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("list is owner-scoped and newest first", func(t *testing.T) {
		fresh := setupDB(t)
		repo := NewPropertyRepository(NewBaseRepository(fresh))
		a := createUser(t, fresh, "lister")
		b := createUser(t, fresh, "neighbor")

		base := time.Now().UTC()
		older := newProperty(a.ID, "First 1", base.Add(-time.Hour))
		newer := newProperty(a.ID, "Second 2", base)
		foreign := newProperty(b.ID, "Elsewhere 3", base)
		for _, p := range []*model.Property{older, newer, foreign} {
			require.NoError(t, repo.Create(ctx, p))
		}

		list, err := repo.ListByOwner(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, newer.ID, list[0].ID)
		assert.Equal(t, older.ID, list[1].ID)
	})

	t.Run("update foreign owner is not found", func(t *testing.T) {
		p := newProperty(owner.ID, "Calle Luna 3", time.Now().UTC())
		require.NoError(t, properties.Create(ctx, p))

		p.OwnerID = other.ID
		p.Address = "Hijacked"
		err := properties.Update(ctx, p)
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("delete is an idempotent no-op when absent", func(t *testing.T) {
		p := newProperty(owner.ID, "Calle Rio 4", time.Now().UTC())
		require.NoError(t, properties.Create(ctx, p))

		require.NoError(t, properties.Delete(ctx, other.ID, p.ID))
		_, err := properties.GetForOwner(ctx, owner.ID, p.ID)
		require.NoError(t, err, "foreign delete must not remove the row")

		require.NoError(t, properties.Delete(ctx, owner.ID, p.ID))
		require.NoError(t, properties.Delete(ctx, owner.ID, p.ID))
	})

	t.Run("count by owner", func(t *testing.T) {
		count, err := properties.CountByOwner(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestContractRepository(t *testing.T) {
	ctx := context.Background()

	type env struct {
		db         *sqlx.DB
		contracts  *contractRepository
		properties *propertyRepository
		owner      *model.User
		property   *model.Property
		tenant     *model.Tenant
	}

	setup := func(t *testing.T) *env {
		db := setupDB(t)
		base := NewBaseRepository(db)
		properties := NewPropertyRepository(base).(*propertyRepository)
		tenants := NewTenantRepository(base)
		contracts := NewContractRepository(base).(*contractRepository)

		owner := createUser(t, db, "landlord")
		property := newProperty(owner.ID, "Calle Mayor 1", time.Now().UTC())
		require.NoError(t, properties.Create(ctx, property))
		tenant := newTenant(owner.ID, "Ana", "Lopez")
		require.NoError(t, tenants.Create(ctx, tenant))

		return &env{db: db, contracts: contracts, properties: properties,
			owner: owner, property: property, tenant: tenant}
	}

	newContract := func(e *env, createdAt time.Time) *model.Contract {
		return &model.Contract{
			Base:         model.Base{ID: uuid.New(), CreatedAt: createdAt},
			OwnerID:      e.owner.ID,
			PropertyID:   e.property.ID,
			TenantID:     e.tenant.ID,
			StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
			MonthlyPrice: 950,
			Status:       model.ContractStatusActive,
		}
	}

	t.Run("create leases the property", func(t *testing.T) {
		e := setup(t)

		require.NoError(t, e.contracts.CreateActive(ctx, newContract(e, time.Now().UTC())))

		p, err := e.properties.GetForOwner(ctx, e.owner.ID, e.property.ID)
		require.NoError(t, err)
		assert.Equal(t, model.PropertyStatusLeased, p.Status)
	})

	t.Run("second active contract on the same property fails atomically", func(t *testing.T) {
		e := setup(t)
		require.NoError(t, e.contracts.CreateActive(ctx, newContract(e, time.Now().UTC())))

		err := e.contracts.CreateActive(ctx, newContract(e, time.Now().UTC()))
		require.Error(t, err)
		assert.Equal(t, errors.ErrValidation, errors.CodeOf(err))

		count, err := e.contracts.CountByOwner(ctx, e.owner.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "failed creation must not leave a contract row")
	})

	t.Run("list joins property address and tenant name", func(t *testing.T) {
		e := setup(t)
		require.NoError(t, e.contracts.CreateActive(ctx, newContract(e, time.Now().UTC())))

		list, err := e.contracts.ListByOwner(ctx, e.owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Calle Mayor 1", list[0].PropertyAddress)
		assert.Equal(t, "Ana Lopez", list[0].TenantName)
	})

	t.Run("update does not touch the property", func(t *testing.T) {
		e := setup(t)
		c := newContract(e, time.Now().UTC())
		require.NoError(t, e.contracts.CreateActive(ctx, c))

		c.Status = model.ContractStatusTerminated
		require.NoError(t, e.contracts.Update(ctx, c))

		got, err := e.contracts.GetForOwner(ctx, e.owner.ID, c.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ContractStatusTerminated, got.Status)

		p, err := e.properties.GetForOwner(ctx, e.owner.ID, e.property.ID)
		require.NoError(t, err)
		assert.Equal(t, model.PropertyStatusLeased, p.Status)
	})

	t.Run("delete releases the property", func(t *testing.T) {
		e := setup(t)
		c := newContract(e, time.Now().UTC())
		require.NoError(t, e.contracts.CreateActive(ctx, c))

		require.NoError(t, e.contracts.DeleteAndRelease(ctx, e.owner.ID, c.ID))

		_, err := e.contracts.GetForOwner(ctx, e.owner.ID, c.ID)
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))

		p, err := e.properties.GetForOwner(ctx, e.owner.ID, e.property.ID)
		require.NoError(t, err)
		assert.Equal(t, model.PropertyStatusAvailable, p.Status)
	})

	t.Run("delete of absent contract is a no-op", func(t *testing.T) {
		e := setup(t)
		require.NoError(t, e.contracts.DeleteAndRelease(ctx, e.owner.ID, uuid.New()))
	})

	t.Run("foreign delete does not release the property", func(t *testing.T) {
		e := setup(t)
		c := newContract(e, time.Now().UTC())
		require.NoError(t, e.contracts.CreateActive(ctx, c))
		stranger := createUser(t, e.db, "stranger")

		require.NoError(t, e.contracts.DeleteAndRelease(ctx, stranger.ID, c.ID))

		_, err := e.contracts.GetForOwner(ctx, e.owner.ID, c.ID)
		require.NoError(t, err, "contract must survive a foreign delete")
		p, err := e.properties.GetForOwner(ctx, e.owner.ID, e.property.ID)
		require.NoError(t, err)
		assert.Equal(t, model.PropertyStatusLeased, p.Status)
	})
}
