// internal/repository/postgres/debt_pg.go
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

const debtColumns = `id, group_id, expense_id, debtor_id, creditor_id, amount, due_date, status, paid_at, confirmed_at, created_at, updated_at`

// DebtRepository implements repository.DebtRepository for PostgreSQL.
type DebtRepository struct{}

// NewDebtRepository creates a new DebtRepository.
func NewDebtRepository(db *sqlx.DB) repository.DebtRepository {
	return &DebtRepository{}
}

// CreateDebt inserts a new debt using the provided DBExecutor.
func (r *DebtRepository) CreateDebt(ctx context.Context, q repository.DBExecutor, debt *domain.Debt) error {
	query := `INSERT INTO debts (group_id, expense_id, debtor_id, creditor_id, amount, due_date, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		debt.GroupID, debt.ExpenseID, debt.DebtorID, debt.CreditorID,
		debt.Amount, debt.DueDate, debt.Status, debt.CreatedAt, debt.UpdatedAt,
	).Scan(&debt.ID)
	if err != nil {
		return fmt.Errorf("failed to create debt: %w", err)
	}
	return nil
}

// GetDebtByID retrieves a debt by its ID using the provided DBExecutor.
func (r *DebtRepository) GetDebtByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Debt, error) {
	return r.getDebt(ctx, q, `SELECT `+debtColumns+` FROM debts WHERE id = $1`, id)
}

// GetDebtByIDForUpdate retrieves a debt and locks its row until the
// surrounding transaction commits or rolls back.
func (r *DebtRepository) GetDebtByIDForUpdate(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Debt, error) {
	return r.getDebt(ctx, q, `SELECT `+debtColumns+` FROM debts WHERE id = $1 FOR UPDATE`, id)
}

func (r *DebtRepository) getDebt(ctx context.Context, q repository.DBExecutor, query string, id int64) (*domain.Debt, error) {
	var debt domain.Debt
	err := q.GetContext(ctx, &debt, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get debt by ID %d: %w", id, err)
	}
	return &debt, nil
}

// GetDebtsByExpenseID retrieves all debts created from an expense.
func (r *DebtRepository) GetDebtsByExpenseID(ctx context.Context, q repository.DBExecutor, expenseID int64) ([]domain.Debt, error) {
	debts := []domain.Debt{}
	query := `SELECT ` + debtColumns + ` FROM debts WHERE expense_id = $1 ORDER BY id`
	if err := q.SelectContext(ctx, &debts, query, expenseID); err != nil {
		return nil, fmt.Errorf("failed to get debts for expense %d: %w", expenseID, err)
	}
	return debts, nil
}

// GetPendingDebtsByUser retrieves pending debts split into those owed to the
// user (creditor side) and those the user owes (debtor side).
func (r *DebtRepository) GetPendingDebtsByUser(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Debt, []domain.Debt, error) {
	owed := []domain.Debt{}
	query := `SELECT ` + debtColumns + ` FROM debts WHERE creditor_id = $1 AND status = $2 ORDER BY amount DESC, id`
	if err := q.SelectContext(ctx, &owed, query, userID, domain.DebtStatusPending); err != nil {
		return nil, nil, fmt.Errorf("failed to get debts owed to user %d: %w", userID, err)
	}

	owing := []domain.Debt{}
	query = `SELECT ` + debtColumns + ` FROM debts WHERE debtor_id = $1 AND status = $2 ORDER BY amount DESC, id`
	if err := q.SelectContext(ctx, &owing, query, userID, domain.DebtStatusPending); err != nil {
		return nil, nil, fmt.Errorf("failed to get debts owed by user %d: %w", userID, err)
	}
	return owed, owing, nil
}

// GetPendingDebtsByGroupID retrieves the pending debts scoped to a group.
func (r *DebtRepository) GetPendingDebtsByGroupID(ctx context.Context, q repository.DBExecutor, groupID int64) ([]domain.Debt, error) {
	debts := []domain.Debt{}
	query := `SELECT ` + debtColumns + ` FROM debts WHERE group_id = $1 AND status = $2 ORDER BY id`
	if err := q.SelectContext(ctx, &debts, query, groupID, domain.DebtStatusPending); err != nil {
		return nil, fmt.Errorf("failed to get pending debts for group %d: %w", groupID, err)
	}
	return debts, nil
}

// GetPendingDebtsForUpdate retrieves pending debts with their rows locked. A
// nil groupID selects every pending debt in the system. Debts backed by an
// active marketplace listing are excluded: a traded claim must not be
// rewritten out from under its listing. Rows are locked in ID order so
// concurrent netting passes acquire locks deterministically.
func (r *DebtRepository) GetPendingDebtsForUpdate(ctx context.Context, q repository.DBExecutor, groupID *int64) ([]domain.Debt, error) {
	const notListed = `NOT EXISTS (SELECT 1 FROM receivables r WHERE r.debt_id = debts.id AND r.status = 'for_sale')`
	debts := []domain.Debt{}
	if groupID != nil {
		query := `SELECT ` + debtColumns + ` FROM debts WHERE group_id = $1 AND status = $2 AND ` + notListed + ` ORDER BY id FOR UPDATE`
		if err := q.SelectContext(ctx, &debts, query, *groupID, domain.DebtStatusPending); err != nil {
			return nil, fmt.Errorf("failed to lock pending debts for group %d: %w", *groupID, err)
		}
		return debts, nil
	}
	query := `SELECT ` + debtColumns + ` FROM debts WHERE status = $1 AND ` + notListed + ` ORDER BY id FOR UPDATE`
	if err := q.SelectContext(ctx, &debts, query, domain.DebtStatusPending); err != nil {
		return nil, fmt.Errorf("failed to lock pending debts: %w", err)
	}
	return debts, nil
}

// UpdateDebtStatus persists the status and lifecycle timestamps of a debt.
func (r *DebtRepository) UpdateDebtStatus(ctx context.Context, q repository.DBExecutor, debt *domain.Debt) error {
	query := `UPDATE debts SET status = $1, paid_at = $2, confirmed_at = $3, updated_at = $4 WHERE id = $5`
	result, err := q.ExecContext(ctx, query, debt.Status, debt.PaidAt, debt.ConfirmedAt, debt.UpdatedAt, debt.ID)
	if err != nil {
		return fmt.Errorf("failed to update status of debt %d: %w", debt.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating debt %d: %w", debt.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// UpdateDebtCreditor reassigns the creditor of a debt.
func (r *DebtRepository) UpdateDebtCreditor(ctx context.Context, q repository.DBExecutor, debtID, creditorID int64) error {
	query := `UPDATE debts SET creditor_id = $1, updated_at = NOW() WHERE id = $2`
	result, err := q.ExecContext(ctx, query, creditorID, debtID)
	if err != nil {
		return fmt.Errorf("failed to reassign creditor of debt %d: %w", debtID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after reassigning debt %d: %w", debtID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// DetachExpense clears the expense reference on all debts of an expense.
func (r *DebtRepository) DetachExpense(ctx context.Context, q repository.DBExecutor, expenseID int64) error {
	query := `UPDATE debts SET expense_id = NULL, updated_at = NOW() WHERE expense_id = $1`
	if _, err := q.ExecContext(ctx, query, expenseID); err != nil {
		return fmt.Errorf("failed to detach debts from expense %d: %w", expenseID, err)
	}
	return nil
}
