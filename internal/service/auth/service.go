package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/avargas/rentals-api/internal/model"
	"github.com/avargas/rentals-api/internal/repository"
	"github.com/avargas/rentals-api/internal/session"
	"github.com/avargas/rentals-api/pkg/errors"
	"github.com/avargas/rentals-api/pkg/security"
)

type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type Service struct {
	users    repository.UserRepository
	plans    repository.PlanRepository
	sessions session.Store
	hasher   security.PasswordHasher
}

func NewService(users repository.UserRepository, plans repository.PlanRepository,
	sessions session.Store, hasher security.PasswordHasher) *Service {
	return &Service{
		users:    users,
		plans:    plans,
		sessions: sessions,
		hasher:   hasher,
	}
}

// Register creates a new account on the chosen plan. Handle and email
// collisions surface as a duplicate error; nothing is inserted.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, errors.Validation("passwords do not match", nil)
	}

	plan, err := s.plans.Get(ctx, req.PlanID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Validation("unknown plan", err)
		}
		return nil, err
	}
	if !plan.Active {
		return nil, errors.Validation("plan is not available", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.Internal(err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PlanID:       plan.ID,
		Admin:        false,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials against the stored hash and opens a session.
// An unknown handle and a wrong password are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.users.GetActiveByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, "", errors.InvalidCredentials()
		}
		return nil, "", err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, "", errors.InvalidCredentials()
	}

	if err := s.users.TouchLastAccess(ctx, user.ID); err != nil {
		return nil, "", err
	}

	token, err := s.sessions.Create(ctx, session.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Admin:    user.Admin,
	})
	if err != nil {
		return nil, "", errors.Internal(err)
	}

	return user, token, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *Service) CurrentUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.Get(ctx, id)
}
