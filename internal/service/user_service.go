// internal/service/user_service.go
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

// UserProfile is the full profile view: the user, their wallet and both sides
// of their pending position.
type UserProfile struct {
	User           domain.User         `json:"user"`
	WalletBalance  decimal.Decimal     `json:"wallet_balance"`
	DebtsToPay     []domain.Debt       `json:"debts_to_pay"`
	DebtsToReceive []domain.Debt       `json:"debts_to_receive"`
	Bought         []domain.Receivable `json:"bought_receivables"`
	ScoreInfo      ScoreInfo           `json:"score_info"`
}

// ScoreInfo describes a user's reliability score.
type ScoreInfo struct {
	CurrentScore decimal.Decimal `json:"current_score"`
	MaxScore     decimal.Decimal `json:"max_score"`
	Description  string          `json:"description"`
}

// UserService manages user accounts and their profile views.
type UserService interface {
	// CreateUserWithWallet registers a user and opens their empty wallet in one
	// transaction. Fails with ErrDuplicateEntry when the email is taken.
	CreateUserWithWallet(ctx context.Context, name, email, phone string) (*domain.User, error)
	// GetProfile returns the user, wallet balance, pending debts both ways,
	// bought receivables and score info.
	GetProfile(ctx context.Context, userID int64) (*UserProfile, error)
	// UpdateProfile changes the user's display name and phone. Empty fields are
	// left untouched.
	UpdateProfile(ctx context.Context, userID int64, name, phone string) (*domain.User, error)
	// GetScoreInfo returns the user's current score with its banding text.
	GetScoreInfo(ctx context.Context, userID int64) (*ScoreInfo, error)
}

type userService struct {
	txRunner
	dbExecutor     repository.DBExecutor
	userRepo       repository.UserRepository
	walletRepo     repository.WalletRepository
	debtRepo       repository.DebtRepository
	receivableRepo repository.ReceivableRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	walletRepo repository.WalletRepository,
	debtRepo repository.DebtRepository,
	receivableRepo repository.ReceivableRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) UserService {
	return &userService{
		txRunner:       newTxRunner(dbBeginner, beginTx, commitTx, rollbackTx),
		dbExecutor:     dbExecutor,
		userRepo:       userRepo,
		walletRepo:     walletRepo,
		debtRepo:       debtRepo,
		receivableRepo: receivableRepo,
	}
}

func (s *userService) CreateUserWithWallet(ctx context.Context, name, email, phone string) (*domain.User, error) {
	if name == "" || email == "" {
		return nil, util.ErrInvalidInput
	}

	user := domain.NewUser(name, email, phone)
	err := s.inTx(ctx, func(q repository.DBExecutor) error {
		if err := s.userRepo.CreateUser(ctx, q, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if err := s.walletRepo.CreateWallet(ctx, q, domain.NewWallet(user.ID)); err != nil {
			return fmt.Errorf("create user: failed to create wallet: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*UserProfile, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	balance := decimal.Zero
	wallet, err := s.walletRepo.GetWalletByUserID(ctx, s.dbExecutor, userID)
	switch {
	case err == nil:
		balance = wallet.Balance
	case !errors.Is(err, util.ErrNotFound):
		return nil, fmt.Errorf("get profile: %w", err)
	}

	toReceive, toPay, err := s.debtRepo.GetPendingDebtsByUser(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	bought, err := s.receivableRepo.GetByBuyerAndStatus(ctx, s.dbExecutor, userID, domain.ReceivableStatusSold)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &UserProfile{
		User:           *user,
		WalletBalance:  balance,
		DebtsToPay:     toPay,
		DebtsToReceive: toReceive,
		Bought:         bought,
		ScoreInfo:      newScoreInfo(user.Score),
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, name, phone string) (*domain.User, error) {
	var user *domain.User
	err := s.inTx(ctx, func(q repository.DBExecutor) error {
		var err error
		user, err = s.userRepo.GetUserByID(ctx, q, userID)
		if err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		if name != "" {
			user.Name = name
		}
		if phone != "" {
			user.Phone = phone
		}
		if err := s.userRepo.UpdateUserProfile(ctx, q, user); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetScoreInfo(ctx context.Context, userID int64) (*ScoreInfo, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get score info: %w", err)
	}
	info := newScoreInfo(user.Score)
	return &info, nil
}

func newScoreInfo(score decimal.Decimal) ScoreInfo {
	return ScoreInfo{
		CurrentScore: score,
		MaxScore:     domain.ScoreMax,
		Description:  ScoreDescription(score),
	}
}

// ScoreDescription returns the banding text for a reliability score.
func ScoreDescription(score decimal.Decimal) string {
	switch {
	case score.GreaterThanOrEqual(decimal.NewFromInt(9)):
		return "Excellent! You are a trusted user."
	case score.GreaterThanOrEqual(decimal.NewFromInt(7)):
		return "Good! Keep paying on time."
	case score.GreaterThanOrEqual(decimal.NewFromInt(5)):
		return "Fair. Pay on time to improve."
	default:
		return "Low. Pay your debts on time to recover."
	}
}
