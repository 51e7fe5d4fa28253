// internal/repository/expense_repo.go
package repository

import (
	"context"

	"simple-split/internal/domain"
)

// ExpenseRepository defines the interface for expense data operations.
type ExpenseRepository interface {
	// CreateExpense adds a new expense using the provided DBExecutor.
	CreateExpense(ctx context.Context, q DBExecutor, expense *domain.Expense) error
	// GetExpenseByID retrieves an expense by its ID.
	GetExpenseByID(ctx context.Context, q DBExecutor, id int64) (*domain.Expense, error)
	// GetExpensesByGroupID retrieves all expenses recorded in a group.
	GetExpensesByGroupID(ctx context.Context, q DBExecutor, groupID int64) ([]domain.Expense, error)
	// DeleteExpense removes an expense. Its debts must be detached first.
	DeleteExpense(ctx context.Context, q DBExecutor, id int64) error
}
