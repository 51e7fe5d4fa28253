// internal/service/expense_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"simple-split/internal/domain"
	"simple-split/internal/repository"
	"simple-split/internal/splitter"
	"simple-split/internal/util"
	"simple-split/pkg/db"
)

// ExpenseService records expenses, splits them into debts and keeps the
// group's debt graph minimal.
type ExpenseService interface {
	// AddExpense creates the expense, splits it into pending debts and runs a
	// netting pass for the group, all in one transaction. An empty
	// participantIDs splits among every current group member.
	AddExpense(ctx context.Context, groupID, payerID int64, description string, amount decimal.Decimal, date time.Time, participantIDs []int64) (*domain.Expense, error)
	// SplitExpense creates the pending debts for an already-recorded expense
	// and returns them. Must be called exactly once per expense: a second
	// call duplicates the debts.
	SplitExpense(ctx context.Context, expenseID int64, participantIDs []int64) ([]domain.Debt, error)
	// DeleteExpense removes an expense, cancelling its still-pending debts.
	// Debts that already reached paid or confirmed are untouched. Payer-only.
	DeleteExpense(ctx context.Context, groupID, expenseID, actingUserID int64) error
}

type expenseService struct {
	txRunner
	dbExecutor     repository.DBExecutor
	expenseRepo    repository.ExpenseRepository
	debtRepo       repository.DebtRepository
	groupRepo      repository.GroupRepository
	receivableRepo repository.ReceivableRepository
}

// NewExpenseService creates a new instance of ExpenseService.
func NewExpenseService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	expenseRepo repository.ExpenseRepository,
	debtRepo repository.DebtRepository,
	groupRepo repository.GroupRepository,
	receivableRepo repository.ReceivableRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) ExpenseService {
	return &expenseService{
		txRunner:       newTxRunner(dbBeginner, beginTx, commitTx, rollbackTx),
		dbExecutor:     dbExecutor,
		expenseRepo:    expenseRepo,
		debtRepo:       debtRepo,
		groupRepo:      groupRepo,
		receivableRepo: receivableRepo,
	}
}

func (s *expenseService) AddExpense(ctx context.Context, groupID, payerID int64, description string, amount decimal.Decimal, date time.Time, participantIDs []int64) (*domain.Expense, error) {
	if description == "" || amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}

	var expense *domain.Expense
	err := s.inTx(ctx, func(q repository.DBExecutor) error {
		isMember, err := s.groupRepo.IsMember(ctx, q, payerID, groupID)
		if err != nil {
			return fmt.Errorf("add expense: %w", err)
		}
		if !isMember {
			return util.ErrForbidden
		}

		expense = domain.NewExpense(groupID, payerID, description, amount, date)
		if err := s.expenseRepo.CreateExpense(ctx, q, expense); err != nil {
			return fmt.Errorf("add expense: %w", err)
		}

		if _, err := s.splitIntoDebts(ctx, q, expense, participantIDs); err != nil {
			return err
		}

		// Keep the group's debt graph minimal after every insertion.
		if _, err := runNettingPass(ctx, q, s.debtRepo, &groupID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) SplitExpense(ctx context.Context, expenseID int64, participantIDs []int64) ([]domain.Debt, error) {
	var debts []domain.Debt
	err := s.inTx(ctx, func(q repository.DBExecutor) error {
		expense, err := s.expenseRepo.GetExpenseByID(ctx, q, expenseID)
		if err != nil {
			return fmt.Errorf("split expense: %w", err)
		}
		debts, err = s.splitIntoDebts(ctx, q, expense, participantIDs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return debts, nil
}

// splitIntoDebts resolves the participant set, computes the shares and
// creates one pending debt per non-payer participant.
func (s *expenseService) splitIntoDebts(ctx context.Context, q repository.DBExecutor, expense *domain.Expense, participantIDs []int64) ([]domain.Debt, error) {
	if len(participantIDs) == 0 {
		members, err := s.groupRepo.GetGroupMembers(ctx, q, expense.GroupID)
		if err != nil {
			return nil, fmt.Errorf("split expense: %w", err)
		}
		for _, member := range members {
			participantIDs = append(participantIDs, member.ID)
		}
	} else {
		for _, participantID := range participantIDs {
			isMember, err := s.groupRepo.IsMember(ctx, q, participantID, expense.GroupID)
			if err != nil {
				return nil, fmt.Errorf("split expense: %w", err)
			}
			if !isMember {
				return nil, util.ErrInvalidInput
			}
		}
	}

	shares, err := splitter.Split(expense.Amount, participantIDs)
	if err != nil {
		return nil, err
	}

	debts := make([]domain.Debt, 0, len(shares))
	for _, share := range shares {
		if share.UserID == expense.PayerID {
			continue // The payer owes nothing to itself.
		}
		if share.Amount.IsZero() {
			continue // Sub-cent splits leave some participants with nothing to owe.
		}
		debt := domain.NewDebt(&expense.GroupID, &expense.ID, share.UserID, expense.PayerID, share.Amount, nil)
		if err := s.debtRepo.CreateDebt(ctx, q, debt); err != nil {
			return nil, fmt.Errorf("split expense: %w", err)
		}
		debts = append(debts, *debt)
	}
	return debts, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, groupID, expenseID, actingUserID int64) error {
	return s.inTx(ctx, func(q repository.DBExecutor) error {
		expense, err := s.expenseRepo.GetExpenseByID(ctx, q, expenseID)
		if err != nil {
			return fmt.Errorf("delete expense: %w", err)
		}
		if expense.GroupID != groupID {
			return util.ErrNotFound
		}
		if expense.PayerID != actingUserID {
			return util.ErrForbidden
		}

		debts, err := s.debtRepo.GetDebtsByExpenseID(ctx, q, expenseID)
		if err != nil {
			return fmt.Errorf("delete expense: %w", err)
		}
		now := time.Now().UTC()
		for i := range debts {
			if debts[i].Status != domain.DebtStatusPending {
				continue // Paid and confirmed debts keep their history.
			}
			if err := s.cancelPendingDebt(ctx, q, &debts[i], now); err != nil {
				return err
			}
		}

		if err := s.debtRepo.DetachExpense(ctx, q, expenseID); err != nil {
			return fmt.Errorf("delete expense: %w", err)
		}
		if err := s.expenseRepo.DeleteExpense(ctx, q, expenseID); err != nil {
			return fmt.Errorf("delete expense: %w", err)
		}
		return nil
	})
}

func (s *expenseService) cancelPendingDebt(ctx context.Context, q repository.DBExecutor, debt *domain.Debt, now time.Time) error {
	listing, err := s.receivableRepo.GetActiveByDebtID(ctx, q, debt.ID)
	switch {
	case err == nil:
		listing.Status = domain.ReceivableStatusCancelled
		if err := s.receivableRepo.UpdateReceivable(ctx, q, listing); err != nil {
			return fmt.Errorf("delete expense: failed to cancel listing on debt %d: %w", debt.ID, err)
		}
	case !errors.Is(err, util.ErrNotFound):
		return fmt.Errorf("delete expense: failed to check listing on debt %d: %w", debt.ID, err)
	}

	debt.Status = domain.DebtStatusCancelled
	debt.UpdatedAt = now
	if err := s.debtRepo.UpdateDebtStatus(ctx, q, debt); err != nil {
		return fmt.Errorf("delete expense: failed to cancel debt %d: %w", debt.ID, err)
	}
	return nil
}
