// internal/repository/postgres/receivable_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"simple-split/internal/domain"
	"simple-split/internal/repository"
	"simple-split/internal/util"
)

const receivableColumns = `id, debt_id, owner_id, buyer_id, nominal_amount, selling_price, status, created_at, sold_at`

// ReceivableRepository implements repository.ReceivableRepository for PostgreSQL.
type ReceivableRepository struct{}

// NewReceivableRepository creates a new ReceivableRepository.
func NewReceivableRepository(db *sqlx.DB) repository.ReceivableRepository {
	return &ReceivableRepository{}
}

// CreateReceivable inserts a new listing using the provided DBExecutor.
func (r *ReceivableRepository) CreateReceivable(ctx context.Context, q repository.DBExecutor, receivable *domain.Receivable) error {
	query := `INSERT INTO receivables (id, debt_id, owner_id, buyer_id, nominal_amount, selling_price, status, created_at, sold_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := q.ExecContext(ctx, query,
		receivable.ID, receivable.DebtID, receivable.OwnerID, receivable.BuyerID,
		receivable.NominalAmount, receivable.SellingPrice, receivable.Status,
		receivable.CreatedAt, receivable.SoldAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create receivable: %w", err)
	}
	return nil
}

// GetReceivableByID retrieves a listing by its ID using the provided DBExecutor.
func (r *ReceivableRepository) GetReceivableByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Receivable, error) {
	return r.getReceivable(ctx, q, `SELECT `+receivableColumns+` FROM receivables WHERE id = $1`, id)
}

// GetReceivableByIDForUpdate retrieves a listing and locks its row until the
// surrounding transaction commits or rolls back.
func (r *ReceivableRepository) GetReceivableByIDForUpdate(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Receivable, error) {
	return r.getReceivable(ctx, q, `SELECT `+receivableColumns+` FROM receivables WHERE id = $1 FOR UPDATE`, id)
}

func (r *ReceivableRepository) getReceivable(ctx context.Context, q repository.DBExecutor, query string, id uuid.UUID) (*domain.Receivable, error) {
	var receivable domain.Receivable
	err := q.GetContext(ctx, &receivable, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get receivable %s: %w", id, err)
	}
	return &receivable, nil
}

// GetActiveByDebtID retrieves the for-sale listing on a debt, if any.
func (r *ReceivableRepository) GetActiveByDebtID(ctx context.Context, q repository.DBExecutor, debtID int64) (*domain.Receivable, error) {
	var receivable domain.Receivable
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE debt_id = $1 AND status = $2`
	err := q.GetContext(ctx, &receivable, query, debtID, domain.ReceivableStatusForSale)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get active receivable for debt %d: %w", debtID, err)
	}
	return &receivable, nil
}

// GetForSaleExcludingOwner retrieves all active listings not owned by the user,
// largest estimated profit first.
func (r *ReceivableRepository) GetForSaleExcludingOwner(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Receivable, error) {
	receivables := []domain.Receivable{}
	query := `
		SELECT ` + receivableColumns + `
		FROM receivables
		WHERE status = $1 AND owner_id != $2
		ORDER BY nominal_amount - selling_price DESC, created_at`
	if err := q.SelectContext(ctx, &receivables, query, domain.ReceivableStatusForSale, userID); err != nil {
		return nil, fmt.Errorf("failed to browse receivables for user %d: %w", userID, err)
	}
	return receivables, nil
}

// GetByOwnerAndStatus retrieves a user's listings in a given status.
func (r *ReceivableRepository) GetByOwnerAndStatus(ctx context.Context, q repository.DBExecutor, ownerID int64, status domain.ReceivableStatus) ([]domain.Receivable, error) {
	receivables := []domain.Receivable{}
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE owner_id = $1 AND status = $2 ORDER BY created_at DESC`
	if err := q.SelectContext(ctx, &receivables, query, ownerID, status); err != nil {
		return nil, fmt.Errorf("failed to get receivables owned by user %d: %w", ownerID, err)
	}
	return receivables, nil
}

// GetByBuyerAndStatus retrieves a user's purchased listings in a given status.
func (r *ReceivableRepository) GetByBuyerAndStatus(ctx context.Context, q repository.DBExecutor, buyerID int64, status domain.ReceivableStatus) ([]domain.Receivable, error) {
	receivables := []domain.Receivable{}
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE buyer_id = $1 AND status = $2 ORDER BY sold_at DESC`
	if err := q.SelectContext(ctx, &receivables, query, buyerID, status); err != nil {
		return nil, fmt.Errorf("failed to get receivables bought by user %d: %w", buyerID, err)
	}
	return receivables, nil
}

// UpdateReceivable persists status, buyer and sold_at changes.
func (r *ReceivableRepository) UpdateReceivable(ctx context.Context, q repository.DBExecutor, receivable *domain.Receivable) error {
	query := `UPDATE receivables SET status = $1, buyer_id = $2, sold_at = $3 WHERE id = $4`
	result, err := q.ExecContext(ctx, query, receivable.Status, receivable.BuyerID, receivable.SoldAt, receivable.ID)
	if err != nil {
		return fmt.Errorf("failed to update receivable %s: %w", receivable.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating receivable %s: %w", receivable.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// GetStats aggregates counts and volumes over active listings.
func (r *ReceivableRepository) GetStats(ctx context.Context, q repository.DBExecutor) (*repository.MarketplaceStats, error) {
	var stats repository.MarketplaceStats
	query := `
		SELECT COUNT(*) AS total_for_sale,
		       COALESCE(SUM(selling_price), 0) AS total_volume,
		       COALESCE(MAX(nominal_amount - selling_price), 0) AS max_discount
		FROM receivables
		WHERE status = $1`
	if err := q.GetContext(ctx, &stats, query, domain.ReceivableStatusForSale); err != nil {
		return nil, fmt.Errorf("failed to get marketplace stats: %w", err)
	}
	return &stats, nil
}
