// internal/api/handler/marketplace.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"simple-split/internal/service"
	"simple-split/internal/util"
)

// MarketplaceHandler handles HTTP requests for the receivables marketplace.
type MarketplaceHandler struct {
	responder
	marketplaceService service.MarketplaceService
}

// NewMarketplaceHandler creates a new MarketplaceHandler.
func NewMarketplaceHandler(marketplaceSvc service.MarketplaceService, logger *slog.Logger) *MarketplaceHandler {
	return &MarketplaceHandler{
		responder:          responder{logger: logger},
		marketplaceService: marketplaceSvc,
	}
}

// Browse handles the marketplace browse request.
// GET /api/marketplace
func (h *MarketplaceHandler) Browse(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	items, err := h.marketplaceService.Browse(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, items)
}

// SellRequest represents the request body for listing a receivable.
type SellRequest struct {
	DebtID       int64           `json:"debt_id"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// Sell handles the list-for-sale request.
// POST /api/marketplace/sell
func (h *MarketplaceHandler) Sell(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var req SellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}
	if req.DebtID <= 0 {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	receivable, err := h.marketplaceService.ListForSale(r.Context(), req.DebtID, userID, req.SellingPrice)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, receivable)
}

// Buy handles the purchase request.
// POST /api/marketplace/buy/{receivableID}
func (h *MarketplaceHandler) Buy(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	receivableID, err := uuid.Parse(chi.URLParam(r, "receivableID"))
	if err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	receivable, err := h.marketplaceService.Purchase(r.Context(), receivableID, userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, receivable)
}

// CancelListing handles the withdraw-listing request.
// POST /api/marketplace/cancel/{receivableID}
func (h *MarketplaceHandler) CancelListing(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	receivableID, err := uuid.Parse(chi.URLParam(r, "receivableID"))
	if err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	receivable, err := h.marketplaceService.CancelListing(r.Context(), receivableID, userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, receivable)
}

// MyReceivables handles the my-listings request.
// GET /api/marketplace/my-receivables
func (h *MarketplaceHandler) MyReceivables(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	receivables, err := h.marketplaceService.GetMyReceivables(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, receivables)
}

// Stats handles the marketplace statistics request.
// GET /api/marketplace/stats
func (h *MarketplaceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.marketplaceService.GetStats(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, stats)
}
