// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"simple-split/internal/domain"
)

// TransactionRepository defines the interface for wallet transaction records.
// Records are append-only: there is no update or delete operation.
type TransactionRepository interface {
	// CreateTransaction appends a new transaction record using the provided DBExecutor.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionsByWalletID retrieves transaction history for a wallet,
	// newest first, along with the total record count.
	GetTransactionsByWalletID(ctx context.Context, q DBExecutor, walletID int64, limit, offset int) ([]domain.Transaction, int64, error)
}
