// internal/api/handler/group.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"simple-split/internal/service"
	"simple-split/internal/util"
)

// GroupHandler handles HTTP requests for groups and their expenses.
type GroupHandler struct {
	responder
	groupService   service.GroupService
	expenseService service.ExpenseService
	debtService    service.DebtService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupSvc service.GroupService, expenseSvc service.ExpenseService, debtSvc service.DebtService, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{
		responder:      responder{logger: logger},
		groupService:   groupSvc,
		expenseService: expenseSvc,
		debtService:    debtSvc,
	}
}

// CreateGroupRequest represents the request body for group creation.
type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateGroup handles the group creation request.
// POST /api/groups
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	group, err := h.groupService.CreateGroup(r.Context(), req.Name, req.Description, userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, group)
}

// ListGroups handles the list-my-groups request.
// GET /api/groups
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	groups, err := h.groupService.GetUserGroups(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, groups)
}

// GetGroup handles the group detail request.
// GET /api/groups/{groupID}
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	groupID, err := pathID(chi.URLParam(r, "groupID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	detail, err := h.groupService.GetGroupDetail(r.Context(), groupID, userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, detail)
}

// AddMemberRequest represents the request body for adding a member by email.
type AddMemberRequest struct {
	Email string `json:"email"`
}

// AddMember handles the add-member request.
// POST /api/groups/{groupID}/members
func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	groupID, err := pathID(chi.URLParam(r, "groupID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	member, err := h.groupService.AddMember(r.Context(), groupID, userID, req.Email)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, member)
}

// AddExpenseRequest represents the request body for recording an expense.
type AddExpenseRequest struct {
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Date           *time.Time      `json:"date"`
	ParticipantIDs []int64         `json:"participant_ids"`
}

// AddExpense handles the record-expense request. The expense is split into
// debts and the group's debt graph is re-netted before the response.
// POST /api/groups/{groupID}/expenses
func (h *GroupHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	groupID, err := pathID(chi.URLParam(r, "groupID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var req AddExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}
	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}

	expense, err := h.expenseService.AddExpense(r.Context(), groupID, userID, req.Description, req.Amount, date, req.ParticipantIDs)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, expense)
}

// DeleteExpense handles the delete-expense request.
// DELETE /api/groups/{groupID}/expenses/{expenseID}
func (h *GroupHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	groupID, err := pathID(chi.URLParam(r, "groupID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	expenseID, err := pathID(chi.URLParam(r, "expenseID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	if err := h.expenseService.DeleteExpense(r.Context(), groupID, expenseID, userID); err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Expense deleted"})
}

// NetDebts handles the on-demand netting request for a group.
// POST /api/groups/{groupID}/net
func (h *GroupHandler) NetDebts(w http.ResponseWriter, r *http.Request) {
	if _, err := actingUserID(r); err != nil {
		h.respondWithError(w, err)
		return
	}
	groupID, err := pathID(chi.URLParam(r, "groupID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	created, err := h.debtService.NetDebts(r.Context(), &groupID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Debts netted",
		"created_debts": created,
	})
}
