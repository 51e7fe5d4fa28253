// internal/service/debt_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"simple-split/internal/domain"
	"simple-split/internal/netting"
	"simple-split/internal/repository"
	"simple-split/internal/util"
	"simple-split/pkg/db"
)

// Score deltas applied when a creditor confirms a payment.
var (
	scoreRewardOnTime  = decimal.RequireFromString("0.1")
	scorePenaltyLate   = decimal.RequireFromString("-0.5")
	descriptionPayment = "debt payment"
)

// DebtsSummary aggregates a user's pending position.
type DebtsSummary struct {
	TotalOwe     decimal.Decimal `json:"total_owe"`
	TotalOwed    decimal.Decimal `json:"total_owed"`
	NetBalance   decimal.Decimal `json:"net_balance"`
	DebtsCount   int             `json:"debts_count"`
	CreditsCount int             `json:"credits_count"`
}

// DebtService drives the debt state machine and the netting passes.
type DebtService interface {
	// MarkAsPaid transitions a pending debt to paid, moving the funds from the
	// debtor's wallet to the creditor's. Debtor-only.
	MarkAsPaid(ctx context.Context, debtID, actingUserID int64) (*domain.Debt, error)
	// ConfirmPayment transitions a paid debt to confirmed and adjusts the
	// debtor's score for timeliness. Creditor-only.
	ConfirmPayment(ctx context.Context, debtID, actingUserID int64) (*domain.Debt, error)
	// Cancel voids a pending debt, cancelling any active listing on it.
	Cancel(ctx context.Context, debtID int64) (*domain.Debt, error)
	// NetDebts rewrites the pending debts in scope (one group, or everything
	// when groupID is nil) into the minimum equivalent set. Returns the
	// synthesized debts; an already-minimal scope returns none.
	NetDebts(ctx context.Context, groupID *int64) ([]domain.Debt, error)
	// GetUserDebts returns the user's pending debts: owed to them and owed by them.
	GetUserDebts(ctx context.Context, userID int64) (owed []domain.Debt, owing []domain.Debt, err error)
	// GetDebtsSummary totals the user's pending position.
	GetDebtsSummary(ctx context.Context, userID int64) (*DebtsSummary, error)
}

type debtService struct {
	txRunner
	dbExecutor     repository.DBExecutor
	ledger         ledger
	debtRepo       repository.DebtRepository
	receivableRepo repository.ReceivableRepository
	userRepo       repository.UserRepository
}

// NewDebtService creates a new instance of DebtService.
func NewDebtService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	debtRepo repository.DebtRepository,
	receivableRepo repository.ReceivableRepository,
	userRepo repository.UserRepository,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) DebtService {
	return &debtService{
		txRunner:       newTxRunner(dbBeginner, beginTx, commitTx, rollbackTx),
		dbExecutor:     dbExecutor,
		ledger:         ledger{walletRepo: walletRepo, transactionRepo: transactionRepo},
		debtRepo:       debtRepo,
		receivableRepo: receivableRepo,
		userRepo:       userRepo,
	}
}

func (s *debtService) MarkAsPaid(ctx context.Context, debtID, actingUserID int64) (*domain.Debt, error) {
	var debt *domain.Debt
	err := s.inTx(ctx, func(q repository.DBExecutor) error {
		var err error
		debt, err = s.debtRepo.GetDebtByIDForUpdate(ctx, q, debtID)
		if err != nil {
			return fmt.Errorf("mark as paid: failed to get debt %d: %w", debtID, err)
		}
		if debt.DebtorID != actingUserID {
			return util.ErrForbidden
		}
		if !debt.Status.CanTransitionTo(domain.DebtStatusPaid) {
			return util.ErrInvalidState
		}

		// The transfer fails with ErrInsufficientFunds before anything is
		// written, so the debt stays pending and both balances stay put.
		if err := s.ledger.transfer(ctx, q, debt.DebtorID, debt.CreditorID, debt.Amount, descriptionPayment); err != nil {
			return err
		}

		// A debtor settling directly supersedes any listing on the claim.
		if err := s.cancelActiveListing(ctx, q, debt.ID); err != nil {
			return fmt.Errorf("mark as paid: %w", err)
		}

		now := time.Now().UTC()
		debt.Status = domain.DebtStatusPaid
		debt.PaidAt = &now
		debt.UpdatedAt = now
		if err := s.debtRepo.UpdateDebtStatus(ctx, q, debt); err != nil {
			return fmt.Errorf("mark as paid: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return debt, nil
}

func (s *debtService) ConfirmPayment(ctx context.Context, debtID, actingUserID int64) (*domain.Debt, error) {
	var debt *domain.Debt
	err := s.inTx(ctx, func(q repository.DBExecutor) error {
		var err error
		debt, err = s.debtRepo.GetDebtByIDForUpdate(ctx, q, debtID)
		if err != nil {
			return fmt.Errorf("confirm payment: failed to get debt %d: %w", debtID, err)
		}
		if debt.CreditorID != actingUserID {
			return util.ErrForbidden
		}
		if !debt.Status.CanTransitionTo(domain.DebtStatusConfirmed) {
			return util.ErrInvalidState
		}

		delta := scoreRewardOnTime
		if !debt.PaidOnTime() {
			delta = scorePenaltyLate
		}
		debtor, err := s.userRepo.GetUserByID(ctx, q, debt.DebtorID)
		if err != nil {
			return fmt.Errorf("confirm payment: failed to get debtor %d: %w", debt.DebtorID, err)
		}
		if err := s.userRepo.UpdateUserScore(ctx, q, debtor.ID, debtor.AdjustedScore(delta)); err != nil {
			return fmt.Errorf("confirm payment: %w", err)
		}

		now := time.Now().UTC()
		debt.Status = domain.DebtStatusConfirmed
		debt.ConfirmedAt = &now
		debt.UpdatedAt = now
		if err := s.debtRepo.UpdateDebtStatus(ctx, q, debt); err != nil {
			return fmt.Errorf("confirm payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return debt, nil
}

func (s *debtService) Cancel(ctx context.Context, debtID int64) (*domain.Debt, error) {
	var debt *domain.Debt
	err := s.inTx(ctx, func(q repository.DBExecutor) error {
		var err error
		debt, err = s.debtRepo.GetDebtByIDForUpdate(ctx, q, debtID)
		if err != nil {
			return fmt.Errorf("cancel debt: failed to get debt %d: %w", debtID, err)
		}
		if !debt.Status.CanTransitionTo(domain.DebtStatusCancelled) {
			return util.ErrInvalidState
		}
		return s.cancelDebt(ctx, q, debt)
	})
	if err != nil {
		return nil, err
	}
	return debt, nil
}

// cancelActiveListing voids the active marketplace listing on the debt, if
// any. A settled or cancelled debt must not stay advertised for sale.
func (s *debtService) cancelActiveListing(ctx context.Context, q repository.DBExecutor, debtID int64) error {
	listing, err := s.receivableRepo.GetActiveByDebtID(ctx, q, debtID)
	switch {
	case errors.Is(err, util.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check listing on debt %d: %w", debtID, err)
	}

	listing.Status = domain.ReceivableStatusCancelled
	if err := s.receivableRepo.UpdateReceivable(ctx, q, listing); err != nil {
		return fmt.Errorf("failed to cancel listing on debt %d: %w", debtID, err)
	}
	return nil
}

// cancelDebt voids a pending debt and any active listing on it. Expects the
// debt row to be locked by the caller's transaction.
func (s *debtService) cancelDebt(ctx context.Context, q repository.DBExecutor, debt *domain.Debt) error {
	if err := s.cancelActiveListing(ctx, q, debt.ID); err != nil {
		return fmt.Errorf("cancel debt: %w", err)
	}

	now := time.Now().UTC()
	debt.Status = domain.DebtStatusCancelled
	debt.UpdatedAt = now
	if err := s.debtRepo.UpdateDebtStatus(ctx, q, debt); err != nil {
		return fmt.Errorf("cancel debt: %w", err)
	}
	return nil
}

func (s *debtService) NetDebts(ctx context.Context, groupID *int64) ([]domain.Debt, error) {
	var created []domain.Debt
	err := s.inTx(ctx, func(q repository.DBExecutor) error {
		var err error
		created, err = runNettingPass(ctx, q, s.debtRepo, groupID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// runNettingPass rewrites the pending debts in scope into the minimum
// equivalent set: cancel the originals, insert the synthesized obligations.
// Debts carrying an active marketplace listing are excluded by the repository
// query, so traded claims are never rewritten out from under their listing.
// Shared with the expense service, which nets after every insertion.
func runNettingPass(ctx context.Context, q repository.DBExecutor, debtRepo repository.DebtRepository, groupID *int64) ([]domain.Debt, error) {
	debts, err := debtRepo.GetPendingDebtsForUpdate(ctx, q, groupID)
	if err != nil {
		return nil, fmt.Errorf("netting: %w", err)
	}
	if len(debts) == 0 {
		return nil, nil
	}

	obligations := netting.Simplify(debts)
	if netting.Matches(debts, obligations) {
		// Already minimal; rewriting would only churn rows.
		return nil, nil
	}

	now := time.Now().UTC()
	for i := range debts {
		debts[i].Status = domain.DebtStatusCancelled
		debts[i].UpdatedAt = now
		if err := debtRepo.UpdateDebtStatus(ctx, q, &debts[i]); err != nil {
			return nil, fmt.Errorf("netting: failed to cancel debt %d: %w", debts[i].ID, err)
		}
	}

	created := make([]domain.Debt, 0, len(obligations))
	for _, o := range obligations {
		debt := domain.NewDebt(groupID, nil, o.DebtorID, o.CreditorID, o.Amount, nil)
		if err := debtRepo.CreateDebt(ctx, q, debt); err != nil {
			return nil, fmt.Errorf("netting: failed to create synthesized debt: %w", err)
		}
		created = append(created, *debt)
	}
	return created, nil
}

func (s *debtService) GetUserDebts(ctx context.Context, userID int64) ([]domain.Debt, []domain.Debt, error) {
	owed, owing, err := s.debtRepo.GetPendingDebtsByUser(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("get user debts: %w", err)
	}
	return owed, owing, nil
}

func (s *debtService) GetDebtsSummary(ctx context.Context, userID int64) (*DebtsSummary, error) {
	owed, owing, err := s.debtRepo.GetPendingDebtsByUser(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get debts summary: %w", err)
	}

	summary := &DebtsSummary{
		TotalOwe:     decimal.Zero,
		TotalOwed:    decimal.Zero,
		DebtsCount:   len(owing),
		CreditsCount: len(owed),
	}
	for _, d := range owing {
		summary.TotalOwe = summary.TotalOwe.Add(d.Amount)
	}
	for _, d := range owed {
		summary.TotalOwed = summary.TotalOwed.Add(d.Amount)
	}
	summary.NetBalance = summary.TotalOwed.Sub(summary.TotalOwe)
	return summary, nil
}
