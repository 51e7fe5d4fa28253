// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"simple-split/internal/domain"
	"simple-split/internal/repository"
	"simple-split/pkg/db"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController. Embedding
// MockDBExecutor lets it stand in for the transaction's DBExecutor too.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// txFuncs returns transaction control functions routed through the mock
// controller, so tests can assert on Commit/Rollback.
func txFuncs(txc *MockTxController) (db.BeginTxFunc, db.CommitTxFunc, db.RollbackTxFunc) {
	begin := func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
		return txc, nil
	}
	commit := func(tx db.TxController) error {
		return txc.Commit()
	}
	rollback := func(tx db.TxController) {
		_ = txc.Rollback()
	}
	return begin, commit, rollback
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	args := m.Called(ctx, q, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUserProfile(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUserScore(ctx context.Context, q repository.DBExecutor, userID int64, score decimal.Decimal) error {
	args := m.Called(ctx, q, userID, score)
	return args.Error(0)
}

// MockGroupRepository is a mock implementation of repository.GroupRepository.
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) CreateGroup(ctx context.Context, q repository.DBExecutor, group *domain.Group) error {
	args := m.Called(ctx, q, group)
	return args.Error(0)
}

func (m *MockGroupRepository) GetGroupByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Group, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) GetGroupsByUserID(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Group, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

func (m *MockGroupRepository) AddMembership(ctx context.Context, q repository.DBExecutor, membership *domain.Membership) error {
	args := m.Called(ctx, q, membership)
	return args.Error(0)
}

func (m *MockGroupRepository) IsMember(ctx context.Context, q repository.DBExecutor, userID, groupID int64) (bool, error) {
	args := m.Called(ctx, q, userID, groupID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGroupRepository) GetGroupMembers(ctx context.Context, q repository.DBExecutor, groupID int64) ([]domain.User, error) {
	args := m.Called(ctx, q, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockExpenseRepository is a mock implementation of repository.ExpenseRepository.
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) CreateExpense(ctx context.Context, q repository.DBExecutor, expense *domain.Expense) error {
	args := m.Called(ctx, q, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) GetExpenseByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Expense, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) GetExpensesByGroupID(ctx context.Context, q repository.DBExecutor, groupID int64) ([]domain.Expense, error) {
	args := m.Called(ctx, q, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, q repository.DBExecutor, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

// MockDebtRepository is a mock implementation of repository.DebtRepository.
type MockDebtRepository struct {
	mock.Mock
}

func (m *MockDebtRepository) CreateDebt(ctx context.Context, q repository.DBExecutor, debt *domain.Debt) error {
	args := m.Called(ctx, q, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) GetDebtByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Debt, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) GetDebtByIDForUpdate(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Debt, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) GetDebtsByExpenseID(ctx context.Context, q repository.DBExecutor, expenseID int64) ([]domain.Debt, error) {
	args := m.Called(ctx, q, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) GetPendingDebtsByUser(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Debt, []domain.Debt, error) {
	args := m.Called(ctx, q, userID)
	var owed, owing []domain.Debt
	if args.Get(0) != nil {
		owed = args.Get(0).([]domain.Debt)
	}
	if args.Get(1) != nil {
		owing = args.Get(1).([]domain.Debt)
	}
	return owed, owing, args.Error(2)
}

func (m *MockDebtRepository) GetPendingDebtsByGroupID(ctx context.Context, q repository.DBExecutor, groupID int64) ([]domain.Debt, error) {
	args := m.Called(ctx, q, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) GetPendingDebtsForUpdate(ctx context.Context, q repository.DBExecutor, groupID *int64) ([]domain.Debt, error) {
	args := m.Called(ctx, q, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) UpdateDebtStatus(ctx context.Context, q repository.DBExecutor, debt *domain.Debt) error {
	args := m.Called(ctx, q, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) UpdateDebtCreditor(ctx context.Context, q repository.DBExecutor, debtID, creditorID int64) error {
	args := m.Called(ctx, q, debtID, creditorID)
	return args.Error(0)
}

func (m *MockDebtRepository) DetachExpense(ctx context.Context, q repository.DBExecutor, expenseID int64) error {
	args := m.Called(ctx, q, expenseID)
	return args.Error(0)
}

// MockReceivableRepository is a mock implementation of repository.ReceivableRepository.
type MockReceivableRepository struct {
	mock.Mock
}

func (m *MockReceivableRepository) CreateReceivable(ctx context.Context, q repository.DBExecutor, receivable *domain.Receivable) error {
	args := m.Called(ctx, q, receivable)
	return args.Error(0)
}

func (m *MockReceivableRepository) GetReceivableByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Receivable, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) GetReceivableByIDForUpdate(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Receivable, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) GetActiveByDebtID(ctx context.Context, q repository.DBExecutor, debtID int64) (*domain.Receivable, error) {
	args := m.Called(ctx, q, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) GetForSaleExcludingOwner(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Receivable, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) GetByOwnerAndStatus(ctx context.Context, q repository.DBExecutor, ownerID int64, status domain.ReceivableStatus) ([]domain.Receivable, error) {
	args := m.Called(ctx, q, ownerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) GetByBuyerAndStatus(ctx context.Context, q repository.DBExecutor, buyerID int64, status domain.ReceivableStatus) ([]domain.Receivable, error) {
	args := m.Called(ctx, q, buyerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) UpdateReceivable(ctx context.Context, q repository.DBExecutor, receivable *domain.Receivable) error {
	args := m.Called(ctx, q, receivable)
	return args.Error(0)
}

func (m *MockReceivableRepository) GetStats(ctx context.Context, q repository.DBExecutor) (*repository.MarketplaceStats, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.MarketplaceStats), args.Error(1)
}

// MockWalletRepository is a mock implementation of repository.WalletRepository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	args := m.Called(ctx, q, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetWalletByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetWalletByUserIDForUpdate(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) UpdateWalletBalance(ctx context.Context, q repository.DBExecutor, walletID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, q, walletID, amount)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	args := m.Called(ctx, q, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetTransactionsByWalletID(ctx context.Context, q repository.DBExecutor, walletID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, q, walletID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}
