// internal/repository/group_repo.go
package repository

import (
	"context"

	"simple-split/internal/domain"
)

// GroupRepository defines the interface for group and membership data operations.
type GroupRepository interface {
	// CreateGroup adds a new group using the provided DBExecutor.
	CreateGroup(ctx context.Context, q DBExecutor, group *domain.Group) error
	// GetGroupByID retrieves a group by its ID.
	GetGroupByID(ctx context.Context, q DBExecutor, id int64) (*domain.Group, error)
	// GetGroupsByUserID retrieves all groups the user is a member of.
	GetGroupsByUserID(ctx context.Context, q DBExecutor, userID int64) ([]domain.Group, error)
	// AddMembership links a user to a group. Fails with ErrDuplicateEntry when
	// the membership already exists.
	AddMembership(ctx context.Context, q DBExecutor, membership *domain.Membership) error
	// IsMember reports whether the user belongs to the group.
	IsMember(ctx context.Context, q DBExecutor, userID, groupID int64) (bool, error)
	// GetGroupMembers retrieves the users belonging to a group.
	GetGroupMembers(ctx context.Context, q DBExecutor, groupID int64) ([]domain.User, error)
}
