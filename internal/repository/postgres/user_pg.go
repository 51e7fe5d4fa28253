// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"simple-split/internal/domain"
	"simple-split/internal/repository"
	"simple-split/internal/util"
)

// Postgres error code raised on unique constraint conflicts.
const uniqueViolation = "23505"

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct{}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{}
}

// CreateUser inserts a new user using the provided DBExecutor.
func (r *UserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `INSERT INTO users (name, email, phone, score, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := q.QueryRowContext(ctx, query, user.Name, user.Email, user.Phone, user.Score, user.CreatedAt, user.UpdatedAt).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return util.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by their ID using the provided DBExecutor.
func (r *UserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, name, email, phone, score, created_at, updated_at FROM users WHERE id = $1`
	err := q.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by their email using the provided DBExecutor.
func (r *UserRepository) GetUserByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, name, email, phone, score, created_at, updated_at FROM users WHERE email = $1`
	err := q.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email '%s': %w", email, err)
	}
	return &user, nil
}

// UpdateUserProfile persists name and phone changes using the provided DBExecutor.
func (r *UserRepository) UpdateUserProfile(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `UPDATE users SET name = $1, phone = $2, updated_at = $3 WHERE id = $4`
	user.UpdatedAt = time.Now().UTC()
	result, err := q.ExecContext(ctx, query, user.Name, user.Phone, user.UpdatedAt, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update profile of user %d: %w", user.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating user %d: %w", user.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// UpdateUserScore sets a user's reliability score using the provided DBExecutor.
func (r *UserRepository) UpdateUserScore(ctx context.Context, q repository.DBExecutor, userID int64, score decimal.Decimal) error {
	query := `UPDATE users SET score = $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, score, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to update score for user %d: %w", userID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating score for user %d: %w", userID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
