// internal/service/group_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"simple-split/internal/domain"
	"simple-split/internal/util"
)

func newGroupServiceForTest(
	txc *MockTxController,
	groupRepo *MockGroupRepository,
	userRepo *MockUserRepository,
	expenseRepo *MockExpenseRepository,
	debtRepo *MockDebtRepository,
) GroupService {
	begin, commit, rollback := txFuncs(txc)
	return NewGroupService(new(MockDBBeginner), new(MockDBExecutor), groupRepo, userRepo, expenseRepo, debtRepo, begin, commit, rollback)
}

func TestCreateGroup(t *testing.T) {
	creatorID := int64(1)

	t.Run("CreatorBecomesFirstMember", func(t *testing.T) {
		ctx := context.Background()
		mockGroupRepo := new(MockGroupRepository)
		mockUserRepo := new(MockUserRepository)
		mockExpenseRepo := new(MockExpenseRepository)
		mockDebtRepo := new(MockDebtRepository)
		mockTxController := new(MockTxController)
		service := newGroupServiceForTest(mockTxController, mockGroupRepo, mockUserRepo, mockExpenseRepo, mockDebtRepo)

		creator := &domain.User{ID: creatorID, Name: "Alice"}

		mockTxController.On("Commit").Return(nil).Once()
		mockTxController.On("Rollback").Return(nil).Maybe()
		mockUserRepo.On("GetUserByID", ctx, mock.Anything, creatorID).Return(creator, nil).Once()
		mockGroupRepo.On("CreateGroup", ctx, mock.Anything, mock.MatchedBy(func(g *domain.Group) bool {
			return g.Name == "trip" && g.CreatedBy == creatorID
		})).Return(nil).Once()
		mockGroupRepo.On("AddMembership", ctx, mock.Anything, mock.MatchedBy(func(m *domain.Membership) bool {
			return m.UserID == creatorID
		})).Return(nil).Once()

		group, err := service.CreateGroup(ctx, "trip", "summer trip", creatorID)

		assert.NoError(t, err)
		assert.NotNil(t, group)
		mock.AssertExpectationsForObjects(t, mockTxController, mockGroupRepo, mockUserRepo)
	})

	t.Run("EmptyName", func(t *testing.T) {
		ctx := context.Background()
		mockGroupRepo := new(MockGroupRepository)
		mockUserRepo := new(MockUserRepository)
		mockExpenseRepo := new(MockExpenseRepository)
		mockDebtRepo := new(MockDebtRepository)
		mockTxController := new(MockTxController)
		service := newGroupServiceForTest(mockTxController, mockGroupRepo, mockUserRepo, mockExpenseRepo, mockDebtRepo)

		group, err := service.CreateGroup(ctx, "", "no name", creatorID)

		assert.ErrorIs(t, err, util.ErrInvalidInput)
		assert.Nil(t, group)
		mockTxController.AssertNotCalled(t, "Commit")
	})
}

func TestAddMember(t *testing.T) {
	groupID := int64(3)
	actingUserID := int64(1)

	t.Run("AddsByEmail", func(t *testing.T) {
		ctx := context.Background()
		mockGroupRepo := new(MockGroupRepository)
		mockUserRepo := new(MockUserRepository)
		mockExpenseRepo := new(MockExpenseRepository)
		mockDebtRepo := new(MockDebtRepository)
		mockTxController := new(MockTxController)
		service := newGroupServiceForTest(mockTxController, mockGroupRepo, mockUserRepo, mockExpenseRepo, mockDebtRepo)

		newcomer := &domain.User{ID: 2, Email: "bob@example.com"}

		mockTxController.On("Commit").Return(nil).Once()
		mockTxController.On("Rollback").Return(nil).Maybe()
		mockGroupRepo.On("IsMember", ctx, mock.Anything, actingUserID, groupID).Return(true, nil).Once()
		mockUserRepo.On("GetUserByEmail", ctx, mock.Anything, "bob@example.com").Return(newcomer, nil).Once()
		mockGroupRepo.On("AddMembership", ctx, mock.Anything, mock.MatchedBy(func(m *domain.Membership) bool {
			return m.UserID == newcomer.ID && m.GroupID == groupID
		})).Return(nil).Once()

		member, err := service.AddMember(ctx, groupID, actingUserID, "bob@example.com")

		assert.NoError(t, err)
		assert.Equal(t, newcomer.ID, member.ID)
		mock.AssertExpectationsForObjects(t, mockTxController, mockGroupRepo, mockUserRepo)
	})

	t.Run("NonMemberCannotAdd", func(t *testing.T) {
		ctx := context.Background()
		mockGroupRepo := new(MockGroupRepository)
		mockUserRepo := new(MockUserRepository)
		mockExpenseRepo := new(MockExpenseRepository)
		mockDebtRepo := new(MockDebtRepository)
		mockTxController := new(MockTxController)
		service := newGroupServiceForTest(mockTxController, mockGroupRepo, mockUserRepo, mockExpenseRepo, mockDebtRepo)

		mockTxController.On("Rollback").Return(nil).Once()
		mockGroupRepo.On("IsMember", ctx, mock.Anything, actingUserID, groupID).Return(false, nil).Once()

		member, err := service.AddMember(ctx, groupID, actingUserID, "bob@example.com")

		assert.ErrorIs(t, err, util.ErrForbidden)
		assert.Nil(t, member)
		mockTxController.AssertNotCalled(t, "Commit")
		mock.AssertExpectationsForObjects(t, mockTxController, mockGroupRepo)
	})

	t.Run("DuplicateMembership", func(t *testing.T) {
		ctx := context.Background()
		mockGroupRepo := new(MockGroupRepository)
		mockUserRepo := new(MockUserRepository)
		mockExpenseRepo := new(MockExpenseRepository)
		mockDebtRepo := new(MockDebtRepository)
		mockTxController := new(MockTxController)
		service := newGroupServiceForTest(mockTxController, mockGroupRepo, mockUserRepo, mockExpenseRepo, mockDebtRepo)

		newcomer := &domain.User{ID: 2, Email: "bob@example.com"}

		mockTxController.On("Rollback").Return(nil).Once()
		mockGroupRepo.On("IsMember", ctx, mock.Anything, actingUserID, groupID).Return(true, nil).Once()
		mockUserRepo.On("GetUserByEmail", ctx, mock.Anything, "bob@example.com").Return(newcomer, nil).Once()
		mockGroupRepo.On("AddMembership", ctx, mock.Anything, mock.AnythingOfType("*domain.Membership")).Return(util.ErrDuplicateEntry).Once()

		member, err := service.AddMember(ctx, groupID, actingUserID, "bob@example.com")

		assert.ErrorIs(t, err, util.ErrDuplicateEntry)
		assert.Nil(t, member)
		mock.AssertExpectationsForObjects(t, mockTxController, mockGroupRepo, mockUserRepo)
	})
}

func TestGetGroupDetail(t *testing.T) {
	groupID := int64(3)

	t.Run("MemberSeesFullView", func(t *testing.T) {
		ctx := context.Background()
		mockGroupRepo := new(MockGroupRepository)
		mockUserRepo := new(MockUserRepository)
		mockExpenseRepo := new(MockExpenseRepository)
		mockDebtRepo := new(MockDebtRepository)
		mockTxController := new(MockTxController)
		service := newGroupServiceForTest(mockTxController, mockGroupRepo, mockUserRepo, mockExpenseRepo, mockDebtRepo)

		group := &domain.Group{ID: groupID, Name: "trip"}
		members := []domain.User{{ID: 1}, {ID: 2}}

		mockGroupRepo.On("IsMember", ctx, mock.Anything, int64(1), groupID).Return(true, nil).Once()
		mockGroupRepo.On("GetGroupByID", ctx, mock.Anything, groupID).Return(group, nil).Once()
		mockGroupRepo.On("GetGroupMembers", ctx, mock.Anything, groupID).Return(members, nil).Once()
		mockExpenseRepo.On("GetExpensesByGroupID", ctx, mock.Anything, groupID).Return([]domain.Expense{}, nil).Once()
		mockDebtRepo.On("GetPendingDebtsByGroupID", ctx, mock.Anything, groupID).Return([]domain.Debt{}, nil).Once()

		detail, err := service.GetGroupDetail(ctx, groupID, 1)

		assert.NoError(t, err)
		assert.Equal(t, "trip", detail.Group.Name)
		assert.Len(t, detail.Members, 2)
		mock.AssertExpectationsForObjects(t, mockGroupRepo, mockExpenseRepo, mockDebtRepo)
	})

	t.Run("OutsiderForbidden", func(t *testing.T) {
		ctx := context.Background()
		mockGroupRepo := new(MockGroupRepository)
		mockUserRepo := new(MockUserRepository)
		mockExpenseRepo := new(MockExpenseRepository)
		mockDebtRepo := new(MockDebtRepository)
		mockTxController := new(MockTxController)
		service := newGroupServiceForTest(mockTxController, mockGroupRepo, mockUserRepo, mockExpenseRepo, mockDebtRepo)

		mockGroupRepo.On("IsMember", ctx, mock.Anything, int64(9), groupID).Return(false, nil).Once()

		detail, err := service.GetGroupDetail(ctx, groupID, 9)

		assert.ErrorIs(t, err, util.ErrForbidden)
		assert.Nil(t, detail)
		mock.AssertExpectationsForObjects(t, mockGroupRepo)
	})
}
