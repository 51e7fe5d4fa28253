// internal/service/wallet_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"simple-split/internal/domain"
	"simple-split/internal/repository"
	"simple-split/internal/util"
	"simple-split/pkg/db"
)

// WalletService defines the interface for wallet-related business logic.
type WalletService interface {
	AddFunds(ctx context.Context, userID int64, amount decimal.Decimal, description string) (*domain.Wallet, error)
	Transfer(ctx context.Context, fromUserID, toUserID int64, amount decimal.Decimal, description string) error
	GetBalance(ctx context.Context, userID int64) (*domain.Wallet, error)
	GetTransactionHistory(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, int64, error)
}

// walletService implements the WalletService interface.
type walletService struct {
	txRunner
	dbExecutor repository.DBExecutor
	ledger     ledger
	walletRepo repository.WalletRepository
}

// NewWalletService creates a new instance of WalletService.
func NewWalletService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) WalletService {
	return &walletService{
		txRunner:   newTxRunner(dbBeginner, beginTx, commitTx, rollbackTx),
		dbExecutor: dbExecutor,
		ledger:     ledger{walletRepo: walletRepo, transactionRepo: transactionRepo},
		walletRepo: walletRepo,
	}
}

// AddFunds credits the user's wallet, creating the wallet first if the user
// does not have one yet.
func (s *walletService) AddFunds(ctx context.Context, userID int64, amount decimal.Decimal, description string) (*domain.Wallet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}
	if description == "" {
		description = "funds added"
	}

	var wallet *domain.Wallet
	err := s.inTx(ctx, func(q repository.DBExecutor) error {
		_, err := s.walletRepo.GetWalletByUserID(ctx, q, userID)
		if errors.Is(err, util.ErrNotFound) {
			if err := s.walletRepo.CreateWallet(ctx, q, domain.NewWallet(userID)); err != nil {
				return fmt.Errorf("add funds: failed to create wallet for user %d: %w", userID, err)
			}
		} else if err != nil {
			return fmt.Errorf("add funds: failed to get wallet for user %d: %w", userID, err)
		}

		wallet, err = s.ledger.credit(ctx, q, userID, amount, description)
		return err
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// Transfer moves funds between two users' wallets as a single atomic unit.
func (s *walletService) Transfer(ctx context.Context, fromUserID, toUserID int64, amount decimal.Decimal, description string) error {
	return s.inTx(ctx, func(q repository.DBExecutor) error {
		return s.ledger.transfer(ctx, q, fromUserID, toUserID, amount, description)
	})
}

// GetBalance retrieves the user's wallet without a transaction.
func (s *walletService) GetBalance(ctx context.Context, userID int64) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetWalletByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get balance: failed to get wallet for user %d: %w", userID, err)
	}
	return wallet, nil
}

// GetTransactionHistory retrieves a page of the wallet's audit log, newest first.
func (s *walletService) GetTransactionHistory(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	wallet, err := s.walletRepo.GetWalletByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return []domain.Transaction{}, 0, nil
		}
		return nil, 0, fmt.Errorf("get transaction history: failed to get wallet for user %d: %w", userID, err)
	}

	transactions, totalCount, err := s.ledger.transactionRepo.GetTransactionsByWalletID(ctx, s.dbExecutor, wallet.ID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("get transaction history: %w", err)
	}
	return transactions, totalCount, nil
}
