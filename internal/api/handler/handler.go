// internal/api/handler/handler.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"simple-split/internal/util"
)

// DefaultTimeout is the per-request timeout applied by the router.
const DefaultTimeout = 60 * time.Second

// Header carrying the acting user. Authentication itself lives in front of
// this service; the header is trusted as already verified.
const headerUserID = "X-User-ID"

// responder carries the JSON response helpers shared by every handler.
type responder struct {
	logger *slog.Logger
}

func (h *responder) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func (h *responder) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = "Invalid input"
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case util.IsError(err, util.ErrForbidden):
		statusCode = http.StatusForbidden
		message = "Forbidden"
	case util.IsError(err, util.ErrInvalidState):
		statusCode = http.StatusConflict
		message = "Operation not allowed in the current state"
	case util.IsError(err, util.ErrInsufficientFunds):
		statusCode = http.StatusPaymentRequired // 402 Payment Required
		message = "Insufficient funds"
	case util.IsError(err, util.ErrSameWalletTransfer):
		statusCode = http.StatusBadRequest
		message = "Cannot transfer to the same wallet"
	case util.IsError(err, util.ErrDuplicateEntry):
		statusCode = http.StatusConflict
		message = "Already exists"
	case util.IsError(err, util.ErrAlreadyListed):
		statusCode = http.StatusConflict
		message = "Debt already has an active listing"
	case util.IsError(err, util.ErrNotAvailable):
		statusCode = http.StatusConflict
		message = "Listing is not available"
	case util.IsError(err, util.ErrSelfPurchase):
		statusCode = http.StatusBadRequest
		message = "Cannot buy your own listing"
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, map[string]string{"error": message})
}

// actingUserID resolves the acting user from the request headers.
func actingUserID(r *http.Request) (int64, error) {
	raw := r.Header.Get(headerUserID)
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, util.ErrInvalidInput
	}
	return userID, nil
}

// pathID parses a positive int64 path parameter value.
func pathID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, util.ErrInvalidInput
	}
	return id, nil
}

// pagination parses limit/offset query parameters with defaults.
func pagination(r *http.Request) (limit, offset int) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err = strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
