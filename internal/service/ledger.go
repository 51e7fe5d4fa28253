// internal/service/ledger.go
package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"simple-split/internal/domain"
	"simple-split/internal/repository"
	"simple-split/internal/util"
)

// ledger applies balance changes and appends the matching transaction records.
// Every method expects to run inside a caller-owned database transaction and
// locks the wallet rows it touches, so services composing ledger calls with
// other writes (debt payments, receivable purchases) stay atomic.
type ledger struct {
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
}

// credit increases the user's wallet balance and appends a credit record.
func (l *ledger) credit(ctx context.Context, q repository.DBExecutor, userID int64, amount decimal.Decimal, description string) (*domain.Wallet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}

	wallet, err := l.walletRepo.GetWalletByUserIDForUpdate(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("credit: failed to get wallet for user %d: %w", userID, err)
	}

	if err := l.apply(ctx, q, wallet, amount, domain.DirectionCredit, description); err != nil {
		return nil, err
	}
	return wallet, nil
}

// debit decreases the user's wallet balance and appends a debit record. It
// fails with ErrInsufficientFunds when the balance would go negative; nothing
// is written in that case.
func (l *ledger) debit(ctx context.Context, q repository.DBExecutor, userID int64, amount decimal.Decimal, description string) (*domain.Wallet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}

	wallet, err := l.walletRepo.GetWalletByUserIDForUpdate(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("debit: failed to get wallet for user %d: %w", userID, err)
	}
	if wallet.Balance.LessThan(amount) {
		return nil, util.ErrInsufficientFunds
	}

	if err := l.apply(ctx, q, wallet, amount, domain.DirectionDebit, description); err != nil {
		return nil, err
	}
	return wallet, nil
}

// transfer moves amount between two users' wallets as one unit: a debit on
// the sender and a credit on the receiver, each with its own transaction
// record. Wallets are locked in ascending user order so two concurrent
// transfers between the same pair cannot deadlock.
func (l *ledger) transfer(ctx context.Context, q repository.DBExecutor, fromUserID, toUserID int64, amount decimal.Decimal, description string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return util.ErrInvalidInput
	}
	if fromUserID == toUserID {
		return util.ErrSameWalletTransfer
	}

	wallets := make(map[int64]*domain.Wallet, 2)
	for _, userID := range lockOrder(fromUserID, toUserID) {
		wallet, err := l.walletRepo.GetWalletByUserIDForUpdate(ctx, q, userID)
		if err != nil {
			return fmt.Errorf("transfer: failed to get wallet for user %d: %w", userID, err)
		}
		wallets[userID] = wallet
	}

	from, to := wallets[fromUserID], wallets[toUserID]
	if from.Balance.LessThan(amount) {
		return util.ErrInsufficientFunds
	}

	if err := l.apply(ctx, q, from, amount, domain.DirectionDebit, description); err != nil {
		return err
	}
	if err := l.apply(ctx, q, to, amount, domain.DirectionCredit, description); err != nil {
		return err
	}
	return nil
}

// apply shifts the wallet balance and appends the audit record for it. The
// in-memory wallet is updated so callers can return the fresh balance.
func (l *ledger) apply(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet, amount decimal.Decimal, direction domain.Direction, description string) error {
	delta := amount
	if direction == domain.DirectionDebit {
		delta = amount.Neg()
	}
	if err := l.walletRepo.UpdateWalletBalance(ctx, q, wallet.ID, delta); err != nil {
		return fmt.Errorf("failed to update balance of wallet %d: %w", wallet.ID, err)
	}

	record := domain.NewTransaction(wallet.ID, amount, direction, description)
	if err := l.transactionRepo.CreateTransaction(ctx, q, record); err != nil {
		return fmt.Errorf("failed to record transaction on wallet %d: %w", wallet.ID, err)
	}

	wallet.Balance = wallet.Balance.Add(delta)
	return nil
}

func lockOrder(a, b int64) [2]int64 {
	if b < a {
		return [2]int64{b, a}
	}
	return [2]int64{a, b}
}
