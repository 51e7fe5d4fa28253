// internal/api/handler/insight.go
package handler

import (
	"log/slog"
	"net/http"

	"simple-split/internal/service"
)

// InsightHandler handles HTTP requests for summaries and insight feeds.
type InsightHandler struct {
	responder
	insightService service.InsightService
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insightSvc service.InsightService, logger *slog.Logger) *InsightHandler {
	return &InsightHandler{
		responder:      responder{logger: logger},
		insightService: insightSvc,
	}
}

// GetInsights handles the insight feed request.
// GET /api/insights
func (h *InsightHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	insights, err := h.insightService.GetInsights(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, insights)
}

// GetSummary handles the financial summary request.
// GET /api/insights/summary
func (h *InsightHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	summary, err := h.insightService.GetUserSummary(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, summary)
}
