// internal/service/group_service.go
package service

import (
	"context"
	"fmt"

	"simple-split/internal/domain"
	"simple-split/internal/repository"
	"simple-split/internal/util"
	"simple-split/pkg/db"
)

// GroupDetail is the full view of a group a member sees.
type GroupDetail struct {
	Group        domain.Group     `json:"group"`
	Members      []domain.User    `json:"members"`
	Expenses     []domain.Expense `json:"expenses"`
	PendingDebts []domain.Debt    `json:"pending_debts"`
}

// GroupService manages expense groups and their memberships.
type GroupService interface {
	// CreateGroup creates a group with the creator as its first member.
	CreateGroup(ctx context.Context, name, description string, createdBy int64) (*domain.Group, error)
	// AddMember adds the user with the given email to the group. Only current
	// members may add; re-adding an existing member fails with ErrDuplicateEntry.
	AddMember(ctx context.Context, groupID, actingUserID int64, email string) (*domain.User, error)
	// GetUserGroups returns the groups the user belongs to.
	GetUserGroups(ctx context.Context, userID int64) ([]domain.Group, error)
	// GetGroupDetail returns a group with its members, expenses and pending
	// debts. Member-only.
	GetGroupDetail(ctx context.Context, groupID, actingUserID int64) (*GroupDetail, error)
}

type groupService struct {
	txRunner
	dbExecutor  repository.DBExecutor
	groupRepo   repository.GroupRepository
	userRepo    repository.UserRepository
	expenseRepo repository.ExpenseRepository
	debtRepo    repository.DebtRepository
}

// NewGroupService creates a new instance of GroupService.
func NewGroupService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	expenseRepo repository.ExpenseRepository,
	debtRepo repository.DebtRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) GroupService {
	return &groupService{
		txRunner:    newTxRunner(dbBeginner, beginTx, commitTx, rollbackTx),
		dbExecutor:  dbExecutor,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		expenseRepo: expenseRepo,
		debtRepo:    debtRepo,
	}
}

func (s *groupService) CreateGroup(ctx context.Context, name, description string, createdBy int64) (*domain.Group, error) {
	if name == "" {
		return nil, util.ErrInvalidInput
	}

	group := domain.NewGroup(name, description, createdBy)
	err := s.inTx(ctx, func(q repository.DBExecutor) error {
		if _, err := s.userRepo.GetUserByID(ctx, q, createdBy); err != nil {
			return fmt.Errorf("create group: failed to get creator %d: %w", createdBy, err)
		}
		if err := s.groupRepo.CreateGroup(ctx, q, group); err != nil {
			return fmt.Errorf("create group: %w", err)
		}
		if err := s.groupRepo.AddMembership(ctx, q, domain.NewMembership(createdBy, group.ID)); err != nil {
			return fmt.Errorf("create group: failed to add creator membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (s *groupService) AddMember(ctx context.Context, groupID, actingUserID int64, email string) (*domain.User, error) {
	if email == "" {
		return nil, util.ErrInvalidInput
	}

	var user *domain.User
	err := s.inTx(ctx, func(q repository.DBExecutor) error {
		isMember, err := s.groupRepo.IsMember(ctx, q, actingUserID, groupID)
		if err != nil {
			return fmt.Errorf("add member: %w", err)
		}
		if !isMember {
			return util.ErrForbidden
		}

		user, err = s.userRepo.GetUserByEmail(ctx, q, email)
		if err != nil {
			return fmt.Errorf("add member: failed to get user by email: %w", err)
		}
		if err := s.groupRepo.AddMembership(ctx, q, domain.NewMembership(user.ID, groupID)); err != nil {
			return fmt.Errorf("add member: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *groupService) GetUserGroups(ctx context.Context, userID int64) ([]domain.Group, error) {
	groups, err := s.groupRepo.GetGroupsByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get user groups: %w", err)
	}
	return groups, nil
}

func (s *groupService) GetGroupDetail(ctx context.Context, groupID, actingUserID int64) (*GroupDetail, error) {
	isMember, err := s.groupRepo.IsMember(ctx, s.dbExecutor, actingUserID, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group detail: %w", err)
	}
	if !isMember {
		return nil, util.ErrForbidden
	}

	group, err := s.groupRepo.GetGroupByID(ctx, s.dbExecutor, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group detail: %w", err)
	}
	members, err := s.groupRepo.GetGroupMembers(ctx, s.dbExecutor, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group detail: %w", err)
	}
	expenses, err := s.expenseRepo.GetExpensesByGroupID(ctx, s.dbExecutor, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group detail: %w", err)
	}
	debts, err := s.debtRepo.GetPendingDebtsByGroupID(ctx, s.dbExecutor, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group detail: %w", err)
	}

	return &GroupDetail{
		Group:        *group,
		Members:      members,
		Expenses:     expenses,
		PendingDebts: debts,
	}, nil
}
