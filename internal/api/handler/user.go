// internal/api/handler/user.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"simple-split/internal/api/types"
	"simple-split/internal/domain"
	"simple-split/internal/service"
	"simple-split/internal/util"
)

// UserHandler handles HTTP requests for user accounts and their wallets.
type UserHandler struct {
	responder
	userService   service.UserService
	walletService service.WalletService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userSvc service.UserService, walletSvc service.WalletService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		responder:     responder{logger: logger},
		userService:   userSvc,
		walletService: walletSvc,
	}
}

// CreateUserRequest represents the request body for user registration.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateUser handles the user registration request.
// POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}
	if req.Name == "" || req.Email == "" {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	user, err := h.userService.CreateUserWithWallet(r.Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, user)
}

// GetProfile handles the full profile request.
// GET /api/user/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, profile)
}

// UpdateProfileRequest represents the request body for profile updates.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateProfile handles the profile update request.
// PUT /api/user/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, req.Name, req.Phone)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, user)
}

// GetScoreInfo handles the score info request.
// GET /api/user/score-info
func (h *UserHandler) GetScoreInfo(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	info, err := h.userService.GetScoreInfo(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, info)
}

// AddFundsRequest represents the request body for wallet top-ups.
type AddFundsRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// AddFunds handles the wallet top-up request.
// POST /api/user/wallet/add-funds
func (h *UserHandler) AddFunds(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var req AddFundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	wallet, err := h.walletService.AddFunds(r.Context(), userID, req.Amount, req.Description)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Funds added",
		"new_balance": wallet.Balance,
	})
}

// GetTransactions handles the wallet history request.
// GET /api/user/wallet/transactions
func (h *UserHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	limit, offset := pagination(r)
	transactions, totalCount, err := h.walletService.GetTransactionHistory(r.Context(), userID, limit, offset)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.PaginatedResponse[domain.Transaction]{
		Data:       transactions,
		Limit:      limit,
		Offset:     offset,
		TotalCount: totalCount,
	})
}
