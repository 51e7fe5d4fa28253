// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"simple-split/internal/domain"
	"simple-split/internal/repository"
)

// TransactionRepository implements repository.TransactionRepository for
// PostgreSQL. The transactions table is append-only.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction appends a new transaction record using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (wallet_id, amount, direction, description, created_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		transaction.WalletID,
		transaction.Amount,
		transaction.Direction,
		transaction.Description,
		transaction.CreatedAt,
	).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetTransactionsByWalletID retrieves a paginated list of transactions for a
// wallet, newest first, plus the total record count.
func (r *TransactionRepository) GetTransactionsByWalletID(ctx context.Context, q repository.DBExecutor, walletID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	transactions := []domain.Transaction{}
	query := `
		SELECT id, wallet_id, amount, direction, description, created_at
		FROM transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	err := q.SelectContext(ctx, &transactions, query, walletID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions for wallet %d: %w", walletID, err)
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM transactions WHERE wallet_id = $1`
	err = q.GetContext(ctx, &totalCount, countQuery, walletID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total transaction count for wallet %d: %w", walletID, err)
	}

	return transactions, totalCount, nil
}
