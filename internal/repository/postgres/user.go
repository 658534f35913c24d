package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avargas/rentals-api/internal/model"
	"github.com/avargas/rentals-api/internal/repository"
	"github.com/avargas/rentals-api/pkg/errors"
)

type userRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

const userColumns = `id, username, email, password_hash, first_name, last_name, plan_id, is_admin, is_active, created_at, last_access_at`

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := r.Rebind(`
		INSERT INTO users (id, username, email, password_hash, first_name, last_name, plan_id, is_admin, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.PlanID,
		user.Admin,
		user.Active,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Duplicate("username or email already registered", err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := r.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("account", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetActiveByUsername(ctx context.Context, username string) (*model.User, error) {
	query := r.Rebind(`SELECT ` + userColumns + ` FROM users WHERE username = ? AND is_active = TRUE`)

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("account", err)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	var users []*model.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	query := r.Rebind(`
		UPDATE users
		SET email = ?, first_name = ?, last_name = ?, plan_id = ?, is_admin = ?, is_active = ?
		WHERE id = ?
	`)

	result, err := r.db.ExecContext(ctx, query,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PlanID,
		user.Admin,
		user.Active,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("account", nil)
	}
	return nil
}

func (r *userRepository) TouchLastAccess(ctx context.Context, id uuid.UUID) error {
	query := r.Rebind(`UPDATE users SET last_access_at = ? WHERE id = ?`)

	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("failed to update last access: %w", err)
	}
	return nil
}
