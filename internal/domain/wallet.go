// internal/domain/wallet.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet represents a user's internal balance. One wallet per user; the
// balance never goes below zero at a committed state.
type Wallet struct {
	ID        int64           `db:"id" json:"id"`                 // Primary key, BIGSERIAL in DB
	UserID    int64           `db:"user_id" json:"user_id"`       // Foreign key to User, unique
	Balance   decimal.Decimal `db:"balance" json:"balance"`       // Current balance, NUMERIC(20, 2) in DB
	CreatedAt time.Time       `db:"created_at" json:"created_at"` // Timestamp of creation
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"` // Timestamp of last update
}

// NewWallet creates a new Wallet instance with a zero balance.
func NewWallet(userID int64) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		UserID:    userID,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
