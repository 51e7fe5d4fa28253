// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"simple-split/internal/domain"
)

// WalletRepository defines the interface for wallet data operations.
type WalletRepository interface {
	// CreateWallet adds a new wallet using the provided DBExecutor.
	CreateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// GetWalletByUserID retrieves the wallet owned by a user.
	GetWalletByUserID(ctx context.Context, q DBExecutor, userID int64) (*domain.Wallet, error)
	// GetWalletByUserIDForUpdate retrieves the wallet and locks its row for
	// the duration of the surrounding transaction.
	GetWalletByUserIDForUpdate(ctx context.Context, q DBExecutor, userID int64) (*domain.Wallet, error)
	// UpdateWalletBalance shifts the balance of a wallet by amount, which may
	// be negative for debits.
	UpdateWalletBalance(ctx context.Context, q DBExecutor, walletID int64, amount decimal.Decimal) error
}
