// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether a transaction increases or decreases a wallet's
// balance.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// Transaction is an immutable audit record of a single wallet balance change.
// Records are only ever appended; the wallet balance equals the signed sum of
// its committed transactions.
type Transaction struct {
	ID          int64           `db:"id" json:"id"`                   // Primary key, BIGSERIAL in DB
	WalletID    int64           `db:"wallet_id" json:"wallet_id"`     // Wallet this record belongs to
	Amount      decimal.Decimal `db:"amount" json:"amount"`           // Positive amount, NUMERIC(20, 2) in DB
	Direction   Direction       `db:"direction" json:"direction"`     // credit or debit
	Description string          `db:"description" json:"description"` // What the movement was for
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`   // Timestamp of record creation
}

// NewTransaction creates a new Transaction instance.
func NewTransaction(walletID int64, amount decimal.Decimal, direction Direction, description string) *Transaction {
	return &Transaction{
		WalletID:    walletID,
		Amount:      amount,
		Direction:   direction,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}

// Signed returns the amount with the direction applied: positive for credits,
// negative for debits.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Direction == DirectionDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}
