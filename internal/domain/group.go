// internal/domain/group.go
package domain

import "time"

// Group represents a named collection of users who share expenses.
type Group struct {
	ID          int64     `db:"id" json:"id"`                   // Primary key, BIGSERIAL in DB
	Name        string    `db:"name" json:"name"`               // Display name of the group
	Description string    `db:"description" json:"description"` // Optional description
	CreatedBy   int64     `db:"created_by" json:"created_by"`   // User who created the group
	CreatedAt   time.Time `db:"created_at" json:"created_at"`   // Timestamp of creation
}

// NewGroup creates a new Group instance. The creator is added as the first
// member by the service layer.
func NewGroup(name, description string, createdBy int64) *Group {
	return &Group{
		Name:        name,
		Description: description,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}
}

// Membership links a user to a group. Unique per (user, group).
type Membership struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	GroupID   int64     `db:"group_id" json:"group_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewMembership creates a new Membership instance.
func NewMembership(userID, groupID int64) *Membership {
	return &Membership{
		UserID:    userID,
		GroupID:   groupID,
		CreatedAt: time.Now().UTC(),
	}
}
