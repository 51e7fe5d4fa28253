// internal/repository/postgres/group_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"simple-split/internal/domain"
	"simple-split/internal/repository"
	"simple-split/internal/util"
)

// GroupRepository implements repository.GroupRepository for PostgreSQL.
type GroupRepository struct{}

// NewGroupRepository creates a new GroupRepository.
func NewGroupRepository(db *sqlx.DB) repository.GroupRepository {
	return &GroupRepository{}
}

// CreateGroup inserts a new group using the provided DBExecutor.
func (r *GroupRepository) CreateGroup(ctx context.Context, q repository.DBExecutor, group *domain.Group) error {
	query := `INSERT INTO groups (name, description, created_by, created_at)
              VALUES ($1, $2, $3, $4) RETURNING id`
	err := q.QueryRowContext(ctx, query, group.Name, group.Description, group.CreatedBy, group.CreatedAt).Scan(&group.ID)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// GetGroupByID retrieves a group by its ID using the provided DBExecutor.
func (r *GroupRepository) GetGroupByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Group, error) {
	var group domain.Group
	query := `SELECT id, name, description, created_by, created_at FROM groups WHERE id = $1`
	err := q.GetContext(ctx, &group, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get group by ID %d: %w", id, err)
	}
	return &group, nil
}

// GetGroupsByUserID retrieves all groups the user belongs to.
func (r *GroupRepository) GetGroupsByUserID(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Group, error) {
	groups := []domain.Group{}
	query := `
		SELECT g.id, g.name, g.description, g.created_by, g.created_at
		FROM groups g
		JOIN memberships m ON m.group_id = g.id
		WHERE m.user_id = $1
		ORDER BY g.created_at`
	if err := q.SelectContext(ctx, &groups, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get groups for user %d: %w", userID, err)
	}
	return groups, nil
}

// AddMembership links a user to a group using the provided DBExecutor.
func (r *GroupRepository) AddMembership(ctx context.Context, q repository.DBExecutor, membership *domain.Membership) error {
	query := `INSERT INTO memberships (user_id, group_id, created_at)
              VALUES ($1, $2, $3) RETURNING id`
	err := q.QueryRowContext(ctx, query, membership.UserID, membership.GroupID, membership.CreatedAt).Scan(&membership.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return util.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to add membership: %w", err)
	}
	return nil
}

// IsMember reports whether the user belongs to the group.
func (r *GroupRepository) IsMember(ctx context.Context, q repository.DBExecutor, userID, groupID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM memberships WHERE user_id = $1 AND group_id = $2)`
	if err := q.GetContext(ctx, &exists, query, userID, groupID); err != nil {
		return false, fmt.Errorf("failed to check membership of user %d in group %d: %w", userID, groupID, err)
	}
	return exists, nil
}

// GetGroupMembers retrieves the users belonging to a group.
func (r *GroupRepository) GetGroupMembers(ctx context.Context, q repository.DBExecutor, groupID int64) ([]domain.User, error) {
	members := []domain.User{}
	query := `
		SELECT u.id, u.name, u.email, u.phone, u.score, u.created_at, u.updated_at
		FROM users u
		JOIN memberships m ON m.user_id = u.id
		WHERE m.group_id = $1
		ORDER BY u.id`
	if err := q.SelectContext(ctx, &members, query, groupID); err != nil {
		return nil, fmt.Errorf("failed to get members of group %d: %w", groupID, err)
	}
	return members, nil
}
