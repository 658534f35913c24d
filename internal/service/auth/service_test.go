package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/avargas/rentals-api/internal/model"
	"github.com/avargas/rentals-api/internal/session"
	"github.com/avargas/rentals-api/pkg/errors"
	"github.com/avargas/rentals-api/pkg/security"
)

type fakeUsers struct {
	byID       map[uuid.UUID]*model.User
	byUsername map[string]*model.User
	touched    []uuid.UUID
	createErr  error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byID:       map[uuid.UUID]*model.User{},
		byUsername: map[string]*model.User{},
	}
}

func (f *fakeUsers) add(u *model.User) {
	f.byID[u.ID] = u
	f.byUsername[u.Username] = u
}

func (f *fakeUsers) Create(ctx context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byUsername[user.Username]; ok {
		return errors.Duplicate("username or email already registered", nil)
	}
	f.add(user)
	return nil
}

func (f *fakeUsers) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, errors.NotFound("account", nil)
	}
	return u, nil
}

func (f *fakeUsers) GetActiveByUsername(ctx context.Context, username string) (*model.User, error) {
	u, ok := f.byUsername[username]
	if !ok || !u.Active {
		return nil, errors.NotFound("account", nil)
	}
	return u, nil
}

func (f *fakeUsers) List(ctx context.Context) ([]*model.User, error) { return nil, nil }

func (f *fakeUsers) Update(ctx context.Context, user *model.User) error { return nil }

func (f *fakeUsers) TouchLastAccess(ctx context.Context, id uuid.UUID) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakePlans struct {
	plans map[uuid.UUID]*model.Plan
}

func (f *fakePlans) List(ctx context.Context, onlyActive bool) ([]*model.Plan, error) {
	return nil, nil
}

func (f *fakePlans) Get(ctx context.Context, id uuid.UUID) (*model.Plan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, errors.NotFound("plan", nil)
	}
	return p, nil
}

func (f *fakePlans) GetForUser(ctx context.Context, userID uuid.UUID) (*model.Plan, error) {
	return nil, errors.NotFound("plan", nil)
}

type fixture struct {
	svc      *Service
	users    *fakeUsers
	sessions session.Store
	plan     *model.Plan
	inactive *model.Plan
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	plan := &model.Plan{ID: uuid.New(), Name: "Basic", MaxProperties: 5, MaxTenants: 10, MaxContracts: 15, Active: true}
	inactive := &model.Plan{ID: uuid.New(), Name: "Legacy", Active: false}

	users := newFakeUsers()
	plans := &fakePlans{plans: map[uuid.UUID]*model.Plan{plan.ID: plan, inactive.ID: inactive}}
	sessions := session.NewMemoryStore(time.Minute)
	hasher := security.NewBcryptHasher(bcrypt.MinCost)

	return &fixture{
		svc:      NewService(users, plans, sessions, hasher),
		users:    users,
		sessions: sessions,
		plan:     plan,
		inactive: inactive,
	}
}

func registerRequest(f *fixture) *model.RegisterRequest {
	return &model.RegisterRequest{
		Username:        "avargas",
		Email:           "avargas@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FirstName:       "Alba",
		LastName:        "Vargas",
		PlanID:          f.plan.ID,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates active non-admin account", func(t *testing.T) {
		f := newFixture(t)

		user, err := f.svc.Register(ctx, registerRequest(f))
		require.NoError(t, err)

		assert.True(t, user.Active)
		assert.False(t, user.Admin)
		assert.Equal(t, f.plan.ID, user.PlanID)
		assert.NotEqual(t, "secret123", user.PasswordHash)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
	})

	t.Run("rejects password mismatch", func(t *testing.T) {
		f := newFixture(t)
		req := registerRequest(f)
		req.ConfirmPassword = "different"

		_, err := f.svc.Register(ctx, req)
		require.Error(t, err)
		assert.Equal(t, errors.ErrValidation, errors.CodeOf(err))
		assert.Empty(t, f.users.byID)
	})

	t.Run("rejects unknown plan", func(t *testing.T) {
		f := newFixture(t)
		req := registerRequest(f)
		req.PlanID = uuid.New()

		_, err := f.svc.Register(ctx, req)
		require.Error(t, err)
		assert.Equal(t, errors.ErrValidation, errors.CodeOf(err))
	})

	t.Run("rejects inactive plan", func(t *testing.T) {
		f := newFixture(t)
		req := registerRequest(f)
		req.PlanID = f.inactive.ID

		_, err := f.svc.Register(ctx, req)
		require.Error(t, err)
		assert.Equal(t, errors.ErrValidation, errors.CodeOf(err))
	})

	t.Run("surfaces duplicate username", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Register(ctx, registerRequest(f))
		require.NoError(t, err)

		_, err = f.svc.Register(ctx, registerRequest(f))
		require.Error(t, err)
		assert.True(t, errors.IsDuplicate(err))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("opens session and stamps last access", func(t *testing.T) {
		f := newFixture(t)
		registered, err := f.svc.Register(ctx, registerRequest(f))
		require.NoError(t, err)

		user, token, err := f.svc.Login(ctx, "avargas", "secret123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		require.NotEmpty(t, token)
		assert.Equal(t, []uuid.UUID{registered.ID}, f.users.touched)

		principal, err := f.sessions.Get(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, principal.UserID)
		assert.Equal(t, "avargas", principal.Username)
		assert.False(t, principal.Admin)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Register(ctx, registerRequest(f))
		require.NoError(t, err)

		_, token, err := f.svc.Login(ctx, "avargas", "wrong")
		require.Error(t, err)
		assert.Equal(t, errors.ErrInvalidCredentials, errors.CodeOf(err))
		assert.Empty(t, token)
		assert.Empty(t, f.users.touched)
	})

	t.Run("unknown username looks the same as wrong password", func(t *testing.T) {
		f := newFixture(t)

		_, _, errUnknown := f.svc.Login(ctx, "nobody", "secret123")
		require.Error(t, errUnknown)
		assert.Equal(t, errors.ErrInvalidCredentials, errors.CodeOf(errUnknown))
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		f := newFixture(t)
		user, err := f.svc.Register(ctx, registerRequest(f))
		require.NoError(t, err)
		user.Active = false

		_, _, err = f.svc.Login(ctx, "avargas", "secret123")
		require.Error(t, err)
		assert.Equal(t, errors.ErrInvalidCredentials, errors.CodeOf(err))
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.svc.Register(ctx, registerRequest(f))
	require.NoError(t, err)

	_, token, err := f.svc.Login(ctx, "avargas", "secret123")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, token))

	_, err = f.sessions.Get(ctx, token)
	assert.ErrorIs(t, err, session.ErrNoSession)

	// Logging out twice is fine.
	require.NoError(t, f.svc.Logout(ctx, token))
}
