// internal/domain/expense.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a cost paid by one group member on behalf of the group.
// Immutable once split; deletion cancels its still-pending debts.
type Expense struct {
	ID          int64           `db:"id" json:"id"`                   // Primary key, BIGSERIAL in DB
	GroupID     int64           `db:"group_id" json:"group_id"`       // Group the expense belongs to
	PayerID     int64           `db:"payer_id" json:"payer_id"`       // Member who paid the full amount
	Description string          `db:"description" json:"description"` // What the expense was for
	Amount      decimal.Decimal `db:"amount" json:"amount"`           // Total amount paid, > 0, NUMERIC(20, 2) in DB
	Date        time.Time       `db:"date" json:"date"`               // Date the expense occurred
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`   // Timestamp of record creation
}

// NewExpense creates a new Expense instance.
func NewExpense(groupID, payerID int64, description string, amount decimal.Decimal, date time.Time) *Expense {
	return &Expense{
		GroupID:     groupID,
		PayerID:     payerID,
		Description: description,
		Amount:      amount,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}
}
