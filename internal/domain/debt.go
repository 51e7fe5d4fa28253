// internal/domain/debt.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtStatus defines the lifecycle state of a debt.
type DebtStatus string

const (
	DebtStatusPending   DebtStatus = "pending"
	DebtStatusPaid      DebtStatus = "paid"
	DebtStatusConfirmed DebtStatus = "confirmed"
	DebtStatusCancelled DebtStatus = "cancelled"
)

// CanTransitionTo reports whether the state machine allows moving from s to
// next. Confirmed and cancelled are terminal.
func (s DebtStatus) CanTransitionTo(next DebtStatus) bool {
	switch s {
	case DebtStatusPending:
		return next == DebtStatusPaid || next == DebtStatusCancelled
	case DebtStatusPaid:
		return next == DebtStatusConfirmed
	default:
		return false
	}
}

// Debt is a directional claim: the debtor owes the creditor a fixed amount.
// The expense reference is nullable because deleting an expense detaches its
// debts, and debts synthesized by a netting pass never had one.
type Debt struct {
	ID          int64           `db:"id" json:"id"`                   // Primary key, BIGSERIAL in DB
	GroupID     *int64          `db:"group_id" json:"group_id"`       // Group scope; nil for debts netted across groups
	ExpenseID   *int64          `db:"expense_id" json:"expense_id"`   // Originating expense, nullable
	DebtorID    int64           `db:"debtor_id" json:"debtor_id"`     // User who owes
	CreditorID  int64           `db:"creditor_id" json:"creditor_id"` // User who is owed; reassigned on receivable sale
	Amount      decimal.Decimal `db:"amount" json:"amount"`           // Amount owed, > 0, NUMERIC(20, 2) in DB
	DueDate     *time.Time      `db:"due_date" json:"due_date"`       // Optional payment deadline
	Status      DebtStatus      `db:"status" json:"status"`           // pending, paid, confirmed or cancelled
	PaidAt      *time.Time      `db:"paid_at" json:"paid_at"`         // Set when the debtor pays
	ConfirmedAt *time.Time      `db:"confirmed_at" json:"confirmed_at"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// NewDebt creates a new pending Debt instance.
func NewDebt(groupID, expenseID *int64, debtorID, creditorID int64, amount decimal.Decimal, dueDate *time.Time) *Debt {
	now := time.Now().UTC()
	return &Debt{
		GroupID:    groupID,
		ExpenseID:  expenseID,
		DebtorID:   debtorID,
		CreditorID: creditorID,
		Amount:     amount,
		DueDate:    dueDate,
		Status:     DebtStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// PaidOnTime reports whether the recorded payment met the due date. A debt
// with no due date or no recorded payment time counts as on time.
func (d *Debt) PaidOnTime() bool {
	if d.DueDate == nil || d.PaidAt == nil {
		return true
	}
	return !d.PaidAt.After(*d.DueDate)
}
