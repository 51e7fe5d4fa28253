// internal/repository/postgres/wallet_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"simple-split/internal/domain"
	"simple-split/internal/repository"
	"simple-split/internal/util"
)

// WalletRepository implements repository.WalletRepository for PostgreSQL.
type WalletRepository struct{}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(db *sqlx.DB) repository.WalletRepository {
	return &WalletRepository{}
}

// CreateWallet inserts a new wallet using the provided DBExecutor.
func (r *WalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := `INSERT INTO wallets (user_id, balance, created_at, updated_at)
              VALUES ($1, $2, $3, $4) RETURNING id`
	err := q.QueryRowContext(ctx, query, wallet.UserID, wallet.Balance, wallet.CreatedAt, wallet.UpdatedAt).Scan(&wallet.ID)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

// GetWalletByUserID retrieves the wallet owned by a user.
func (r *WalletRepository) GetWalletByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	return r.getWallet(ctx, q, `SELECT id, user_id, balance, created_at, updated_at FROM wallets WHERE user_id = $1`, userID)
}

// GetWalletByUserIDForUpdate retrieves the wallet and locks its row until the
// surrounding transaction commits or rolls back.
func (r *WalletRepository) GetWalletByUserIDForUpdate(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	return r.getWallet(ctx, q, `SELECT id, user_id, balance, created_at, updated_at FROM wallets WHERE user_id = $1 FOR UPDATE`, userID)
}

func (r *WalletRepository) getWallet(ctx context.Context, q repository.DBExecutor, query string, userID int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	err := q.GetContext(ctx, &wallet, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wallet for user %d: %w", userID, err)
	}
	return &wallet, nil
}

// UpdateWalletBalance shifts the balance of a wallet by amount using the
// provided DBExecutor. Negative amounts debit the wallet.
func (r *WalletRepository) UpdateWalletBalance(ctx context.Context, q repository.DBExecutor, walletID int64, amount decimal.Decimal) error {
	query := `UPDATE wallets SET balance = balance + $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, amount, time.Now().UTC(), walletID)
	if err != nil {
		return fmt.Errorf("failed to update wallet balance for ID %d: %w", walletID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating wallet balance for ID %d: %w", walletID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
