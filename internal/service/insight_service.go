// internal/service/insight_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"simple-split/internal/domain"
	"simple-split/internal/repository"
	"simple-split/internal/util"
)

// At most this many reminders per direction, largest amounts first.
const maxRemindersPerKind = 3

// Insight priorities, highest first.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
	PriorityInfo   = "info"
)

// Insight is one actionable item on a user's feed.
type Insight struct {
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    string          `json:"priority"`
	Amount      decimal.Decimal `json:"amount"`
	DebtID      *int64          `json:"debt_id,omitempty"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
}

// UserSummary is the user's financial position at a glance.
type UserSummary struct {
	WalletBalance   decimal.Decimal `json:"wallet_balance"`
	TotalToPay      decimal.Decimal `json:"total_to_pay"`
	TotalToReceive  decimal.Decimal `json:"total_to_receive"`
	NetBalance      decimal.Decimal `json:"net_balance"`
	PotentialProfit decimal.Decimal `json:"potential_profit_from_receivables"`
	FinancialHealth string          `json:"overall_financial_health"`
	Score           decimal.Decimal `json:"score"`
	ActiveGroups    int             `json:"active_groups"`
}

// InsightService derives summaries and reminders from the user's position.
type InsightService interface {
	// GetUserSummary totals the user's wallet, pending position and purchased
	// claims into one view.
	GetUserSummary(ctx context.Context, userID int64) (*UserSummary, error)
	// GetInsights builds the user's feed: payment reminders, incoming payments
	// and score notices, sorted by priority.
	GetInsights(ctx context.Context, userID int64) ([]Insight, error)
}

type insightService struct {
	dbExecutor     repository.DBExecutor
	userRepo       repository.UserRepository
	walletRepo     repository.WalletRepository
	debtRepo       repository.DebtRepository
	receivableRepo repository.ReceivableRepository
	groupRepo      repository.GroupRepository
}

// NewInsightService creates a new instance of InsightService. The service only
// reads, so it takes no transaction control.
func NewInsightService(
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	walletRepo repository.WalletRepository,
	debtRepo repository.DebtRepository,
	receivableRepo repository.ReceivableRepository,
	groupRepo repository.GroupRepository,
) InsightService {
	return &insightService{
		dbExecutor:     dbExecutor,
		userRepo:       userRepo,
		walletRepo:     walletRepo,
		debtRepo:       debtRepo,
		receivableRepo: receivableRepo,
		groupRepo:      groupRepo,
	}
}

func (s *insightService) GetUserSummary(ctx context.Context, userID int64) (*UserSummary, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get user summary: %w", err)
	}

	balance := decimal.Zero
	wallet, err := s.walletRepo.GetWalletByUserID(ctx, s.dbExecutor, userID)
	if err == nil {
		balance = wallet.Balance
	} else if !errors.Is(err, util.ErrNotFound) {
		return nil, fmt.Errorf("get user summary: %w", err)
	}

	toReceive, toPay, err := s.debtRepo.GetPendingDebtsByUser(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get user summary: %w", err)
	}
	totalToPay, totalToReceive := decimal.Zero, decimal.Zero
	for _, d := range toPay {
		totalToPay = totalToPay.Add(d.Amount)
	}
	for _, d := range toReceive {
		totalToReceive = totalToReceive.Add(d.Amount)
	}

	bought, err := s.receivableRepo.GetByBuyerAndStatus(ctx, s.dbExecutor, userID, domain.ReceivableStatusSold)
	if err != nil {
		return nil, fmt.Errorf("get user summary: %w", err)
	}
	profit := decimal.Zero
	for _, r := range bought {
		profit = profit.Add(r.EstimatedProfit())
	}

	groups, err := s.groupRepo.GetGroupsByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get user summary: %w", err)
	}

	return &UserSummary{
		WalletBalance:   balance,
		TotalToPay:      totalToPay,
		TotalToReceive:  totalToReceive,
		NetBalance:      totalToReceive.Sub(totalToPay),
		PotentialProfit: profit,
		FinancialHealth: financialHealth(balance, totalToPay, totalToReceive),
		Score:           user.Score,
		ActiveGroups:    len(groups),
	}, nil
}

func (s *insightService) GetInsights(ctx context.Context, userID int64) ([]Insight, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get insights: %w", err)
	}
	toReceive, toPay, err := s.debtRepo.GetPendingDebtsByUser(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get insights: %w", err)
	}

	insights := []Insight{}
	now := time.Now().UTC()
	for i, debt := range toPay {
		if i == maxRemindersPerKind {
			break
		}
		priority := PriorityMedium
		if debt.DueDate != nil && !debt.DueDate.After(now) {
			priority = PriorityHigh
		}
		debtID := debt.ID
		insights = append(insights, Insight{
			Type:        "payment_reminder",
			Title:       "Payment due",
			Description: fmt.Sprintf("You owe %s to user %d", debt.Amount.StringFixed(2), debt.CreditorID),
			Priority:    priority,
			Amount:      debt.Amount,
			DebtID:      &debtID,
			DueDate:     debt.DueDate,
		})
	}
	for i, debt := range toReceive {
		if i == maxRemindersPerKind {
			break
		}
		debtID := debt.ID
		insights = append(insights, Insight{
			Type:        "incoming_payment",
			Title:       "To receive",
			Description: fmt.Sprintf("User %d owes you %s", debt.DebtorID, debt.Amount.StringFixed(2)),
			Priority:    PriorityLow,
			Amount:      debt.Amount,
			DebtID:      &debtID,
		})
	}

	switch {
	case user.Score.LessThan(decimal.NewFromInt(7)):
		insights = append(insights, Insight{
			Type:        "score_warning",
			Title:       "Low score",
			Description: fmt.Sprintf("Your score is %s. Pay your debts on time to improve it", user.Score.StringFixed(1)),
			Priority:    PriorityHigh,
			Amount:      user.Score,
		})
	case user.Score.GreaterThanOrEqual(decimal.NewFromInt(9)):
		insights = append(insights, Insight{
			Type:        "score_good",
			Title:       "Excellent score",
			Description: fmt.Sprintf("Your score is %s", user.Score.StringFixed(1)),
			Priority:    PriorityInfo,
			Amount:      user.Score,
		})
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return priorityRank(insights[i].Priority) < priorityRank(insights[j].Priority)
	})
	return insights, nil
}

func priorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

func financialHealth(walletBalance, totalToPay, totalToReceive decimal.Decimal) string {
	net := walletBalance.Add(totalToReceive).Sub(totalToPay)
	switch {
	case net.GreaterThan(decimal.NewFromInt(100)):
		return "excellent"
	case net.GreaterThan(decimal.Zero):
		return "good"
	case net.GreaterThan(decimal.NewFromInt(-100)):
		return "fair"
	default:
		return "attention needed"
	}
}
