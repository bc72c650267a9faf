// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"investx-ledger/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(memberHandler *handler.MemberHandler, adminHandler *handler.AdminHandler, logger *slog.Logger) http.Handler {
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

	// Member routes. Identity arrives as a resolved account id header set by
	// the upstream gateway.
	r.Post("/register", memberHandler.Register)
	r.Get("/packages", memberHandler.ListPackages)
	r.Route("/me", func(r chi.Router) {
		r.Get("/", memberHandler.GetProfile)
		r.Get("/investments", memberHandler.ListInvestments)
		r.Post("/investments", memberHandler.Purchase)
		r.Get("/withdrawals", memberHandler.ListWithdrawals)
		r.Post("/withdrawals", memberHandler.RequestWithdrawal)
	})

	// Admin routes. Authorization happens in the gateway service, so an
	// unresolved or unknown identity fails every call with 401.
	r.Route("/admin", func(r chi.Router) {
		r.Get("/accounts", adminHandler.ListAccounts)
		r.Post("/accounts/{accountID}/activate", adminHandler.SetAccountActive)
		r.Post("/accounts/{accountID}/wallet", adminHandler.AdjustWallet)
		r.Get("/accounts/{accountID}/ledger", adminHandler.ListAccountLedger)
		r.Get("/withdrawals", adminHandler.ListWithdrawals)
		r.Post("/withdrawals/{requestID}/approve", adminHandler.ApproveWithdrawal)
		r.Post("/withdrawals/{requestID}/reject", adminHandler.RejectWithdrawal)
		r.Post("/packages", adminHandler.CreatePackage)
		r.Post("/packages/{packageID}/toggle", adminHandler.TogglePackage)
	})

	return r
}
