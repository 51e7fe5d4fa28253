// internal/domain/user.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Score bounds. A user's reliability score always stays within this range.
var (
	ScoreMin     = decimal.Zero
	ScoreMax     = decimal.NewFromInt(10)
	ScoreInitial = decimal.NewFromInt(5)
)

// User represents a registered member of the expense-sharing system.
type User struct {
	ID        int64           `db:"id" json:"id"`                 // Primary key, BIGSERIAL in DB
	Name      string          `db:"name" json:"name"`             // Display name
	Email     string          `db:"email" json:"email"`           // Unique email, used for member lookup
	Phone     string          `db:"phone" json:"phone"`           // Optional contact phone
	Score     decimal.Decimal `db:"score" json:"score"`           // Reliability score in [0, 10]
	CreatedAt time.Time       `db:"created_at" json:"created_at"` // Timestamp of creation
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"` // Timestamp of last update
}

// NewUser creates a new User instance with the initial score.
func NewUser(name, email, phone string) *User {
	now := time.Now().UTC()
	return &User{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Score:     ScoreInitial,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AdjustedScore returns the user's score shifted by delta and clamped to [0, 10].
func (u *User) AdjustedScore(delta decimal.Decimal) decimal.Decimal {
	score := u.Score.Add(delta)
	if score.LessThan(ScoreMin) {
		return ScoreMin
	}
	if score.GreaterThan(ScoreMax) {
		return ScoreMax
	}
	return score
}
