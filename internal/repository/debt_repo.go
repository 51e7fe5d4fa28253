// internal/repository/debt_repo.go
package repository

import (
	"context"

	"simple-split/internal/domain"
)

// DebtRepository defines the interface for debt data operations.
type DebtRepository interface {
	// CreateDebt adds a new debt using the provided DBExecutor.
	CreateDebt(ctx context.Context, q DBExecutor, debt *domain.Debt) error
	// GetDebtByID retrieves a debt by its ID.
	GetDebtByID(ctx context.Context, q DBExecutor, id int64) (*domain.Debt, error)
	// GetDebtByIDForUpdate retrieves a debt and locks its row for the duration
	// of the surrounding transaction.
	GetDebtByIDForUpdate(ctx context.Context, q DBExecutor, id int64) (*domain.Debt, error)
	// GetDebtsByExpenseID retrieves all debts created from an expense.
	GetDebtsByExpenseID(ctx context.Context, q DBExecutor, expenseID int64) ([]domain.Debt, error)
	// GetPendingDebtsByUser retrieves pending debts where the user is debtor
	// or creditor.
	GetPendingDebtsByUser(ctx context.Context, q DBExecutor, userID int64) (owed []domain.Debt, owing []domain.Debt, err error)
	// GetPendingDebtsByGroupID retrieves the pending debts in a group's scope.
	GetPendingDebtsByGroupID(ctx context.Context, q DBExecutor, groupID int64) ([]domain.Debt, error)
	// GetPendingDebtsForUpdate retrieves pending debts, locking their rows.
	// A nil groupID selects every pending debt in the system.
	GetPendingDebtsForUpdate(ctx context.Context, q DBExecutor, groupID *int64) ([]domain.Debt, error)
	// UpdateDebtStatus persists a status change along with the lifecycle
	// timestamps carried on the debt (paid_at, confirmed_at, updated_at).
	UpdateDebtStatus(ctx context.Context, q DBExecutor, debt *domain.Debt) error
	// UpdateDebtCreditor reassigns the creditor of a debt.
	UpdateDebtCreditor(ctx context.Context, q DBExecutor, debtID, creditorID int64) error
	// DetachExpense clears the expense reference on all debts of an expense.
	DetachExpense(ctx context.Context, q DBExecutor, expenseID int64) error
}
