// internal/repository/postgres/expense_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"simple-split/internal/domain"
	"simple-split/internal/repository"
	"simple-split/internal/util"
)

// ExpenseRepository implements repository.ExpenseRepository for PostgreSQL.
type ExpenseRepository struct{}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(db *sqlx.DB) repository.ExpenseRepository {
	return &ExpenseRepository{}
}

// CreateExpense inserts a new expense using the provided DBExecutor.
func (r *ExpenseRepository) CreateExpense(ctx context.Context, q repository.DBExecutor, expense *domain.Expense) error {
	query := `INSERT INTO expenses (group_id, payer_id, description, amount, date, created_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		expense.GroupID, expense.PayerID, expense.Description, expense.Amount, expense.Date, expense.CreatedAt,
	).Scan(&expense.ID)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// GetExpenseByID retrieves an expense by its ID using the provided DBExecutor.
func (r *ExpenseRepository) GetExpenseByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Expense, error) {
	var expense domain.Expense
	query := `SELECT id, group_id, payer_id, description, amount, date, created_at FROM expenses WHERE id = $1`
	err := q.GetContext(ctx, &expense, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get expense by ID %d: %w", id, err)
	}
	return &expense, nil
}

// GetExpensesByGroupID retrieves all expenses recorded in a group.
func (r *ExpenseRepository) GetExpensesByGroupID(ctx context.Context, q repository.DBExecutor, groupID int64) ([]domain.Expense, error) {
	expenses := []domain.Expense{}
	query := `SELECT id, group_id, payer_id, description, amount, date, created_at
              FROM expenses WHERE group_id = $1 ORDER BY date DESC, id DESC`
	if err := q.SelectContext(ctx, &expenses, query, groupID); err != nil {
		return nil, fmt.Errorf("failed to get expenses for group %d: %w", groupID, err)
	}
	return expenses, nil
}

// DeleteExpense removes an expense using the provided DBExecutor.
func (r *ExpenseRepository) DeleteExpense(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting expense %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
