// internal/api/handler/debt.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"simple-split/internal/service"
)

// DebtHandler handles HTTP requests for the debt lifecycle.
type DebtHandler struct {
	responder
	debtService service.DebtService
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debtSvc service.DebtService, logger *slog.Logger) *DebtHandler {
	return &DebtHandler{
		responder:   responder{logger: logger},
		debtService: debtSvc,
	}
}

// ListDebts handles the list-my-debts request.
// GET /api/debts
func (h *DebtHandler) ListDebts(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	owed, owing, err := h.debtService.GetUserDebts(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"debts_to_receive": owed,
		"debts_to_pay":     owing,
	})
}

// GetSummary handles the debts summary request.
// GET /api/debts/summary
func (h *DebtHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	summary, err := h.debtService.GetDebtsSummary(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, summary)
}

// Pay handles the pay-debt request: funds move from the debtor's wallet to
// the creditor's and the debt becomes paid.
// POST /api/debts/{debtID}/pay
func (h *DebtHandler) Pay(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	debtID, err := pathID(chi.URLParam(r, "debtID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	debt, err := h.debtService.MarkAsPaid(r.Context(), debtID, userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, debt)
}

// Confirm handles the confirm-payment request, closing the debt and adjusting
// the debtor's score.
// POST /api/debts/{debtID}/confirm
func (h *DebtHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	debtID, err := pathID(chi.URLParam(r, "debtID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	debt, err := h.debtService.ConfirmPayment(r.Context(), debtID, userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, debt)
}

// Cancel handles the cancel-debt request.
// POST /api/debts/{debtID}/cancel
func (h *DebtHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if _, err := actingUserID(r); err != nil {
		h.respondWithError(w, err)
		return
	}
	debtID, err := pathID(chi.URLParam(r, "debtID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	debt, err := h.debtService.Cancel(r.Context(), debtID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, debt)
}

// Net handles the global on-demand netting request across all groups.
// POST /api/debts/net
func (h *DebtHandler) Net(w http.ResponseWriter, r *http.Request) {
	if _, err := actingUserID(r); err != nil {
		h.respondWithError(w, err)
		return
	}

	created, err := h.debtService.NetDebts(r.Context(), nil)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Debts netted",
		"created_debts": created,
	})
}
