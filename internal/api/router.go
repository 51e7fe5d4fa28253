// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"simple-split/internal/api/handler"
)

// Handlers bundles the handler set the router mounts.
type Handlers struct {
	User        *handler.UserHandler
	Group       *handler.GroupHandler
	Debt        *handler.DebtHandler
	Marketplace *handler.MarketplaceHandler
	Insight     *handler.InsightHandler
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(h Handlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", h.User.CreateUser)

		r.Route("/user", func(r chi.Router) {
			r.Get("/profile", h.User.GetProfile)
			r.Put("/profile", h.User.UpdateProfile)
			r.Get("/score-info", h.User.GetScoreInfo)
			r.Post("/wallet/add-funds", h.User.AddFunds)
			r.Get("/wallet/transactions", h.User.GetTransactions)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Post("/", h.Group.CreateGroup)
			r.Get("/", h.Group.ListGroups)
			r.Get("/{groupID}", h.Group.GetGroup)
			r.Post("/{groupID}/members", h.Group.AddMember)
			r.Post("/{groupID}/expenses", h.Group.AddExpense)
			r.Delete("/{groupID}/expenses/{expenseID}", h.Group.DeleteExpense)
			r.Post("/{groupID}/net", h.Group.NetDebts)
		})

		r.Route("/debts", func(r chi.Router) {
			r.Get("/", h.Debt.ListDebts)
			r.Get("/summary", h.Debt.GetSummary)
			r.Post("/net", h.Debt.Net)
			r.Post("/{debtID}/pay", h.Debt.Pay)
			r.Post("/{debtID}/confirm", h.Debt.Confirm)
			r.Post("/{debtID}/cancel", h.Debt.Cancel)
		})

		r.Route("/marketplace", func(r chi.Router) {
			r.Get("/", h.Marketplace.Browse)
			r.Get("/stats", h.Marketplace.Stats)
			r.Get("/my-receivables", h.Marketplace.MyReceivables)
			r.Post("/sell", h.Marketplace.Sell)
			r.Post("/buy/{receivableID}", h.Marketplace.Buy)
			r.Post("/cancel/{receivableID}", h.Marketplace.CancelListing)
		})

		r.Route("/insights", func(r chi.Router) {
			r.Get("/", h.Insight.GetInsights)
			r.Get("/summary", h.Insight.GetSummary)
		})
	})

	return r
}
