// internal/api/handler/admin.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"investx-ledger/internal/api/types"
	"investx-ledger/internal/service"
	"investx-ledger/internal/util"
)

// adminIDHeader carries the caller's admin identity, resolved by the upstream
// identity collaborator. The gateway itself decides whether that identity
// carries the administrator capability.
const adminIDHeader = "X-Admin-ID"

// AdminHandler handles administrator requests: withdrawal approval, wallet
// adjustments, account activation and package management.
type AdminHandler struct {
	gateway service.AdminGateway
	logger  *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(gateway service.AdminGateway, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		gateway: gateway,
		logger:  logger,
	}
}

// ListAccounts returns all accounts, newest first.
// GET /admin/accounts
func (h *AdminHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.gateway.ListAccounts(r.Context(), r.Header.Get(adminIDHeader))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": accounts})
}

// ActivateRequest represents the request body for account activation.
type ActivateRequest struct {
	Active bool `json:"active"`
}

// SetAccountActive flips an account's soft-activation flag.
// POST /admin/accounts/{accountID}/activate
func (h *AdminHandler) SetAccountActive(w http.ResponseWriter, r *http.Request) {
	var req ActivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	accountID := chi.URLParam(r, "accountID")
	if err := h.gateway.SetAccountActive(r.Context(), r.Header.Get(adminIDHeader), accountID, req.Active); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"account_id": accountID,
		"is_active":  req.Active,
	})
}

// AdjustWalletRequest represents the request body for a manual balance
// adjustment. A positive amount credits the wallet, a negative amount debits it.
type AdjustWalletRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// AdjustWallet applies an out-of-band credit or debit to an account.
// POST /admin/accounts/{accountID}/wallet
func (h *AdminHandler) AdjustWallet(w http.ResponseWriter, r *http.Request) {
	var req AdjustWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	accountID := chi.URLParam(r, "accountID")
	account, err := h.gateway.AdjustWallet(r.Context(), r.Header.Get(adminIDHeader), accountID, req.Amount)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, types.BalanceResponse{
		AccountID:  account.ID,
		NewBalance: account.WalletBalance,
	})
}

// ListAccountLedger returns an account's audit trail with the net of its
// entries, for reconciling the stored wallet balance.
// GET /admin/accounts/{accountID}/ledger
func (h *AdminHandler) ListAccountLedger(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	entries, net, err := h.gateway.AccountLedger(r.Context(), r.Header.Get(adminIDHeader), accountID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"account_id":  accountID,
		"data":        entries,
		"net_balance": net,
	})
}

// ListWithdrawals returns all withdrawal requests, newest first.
// GET /admin/withdrawals
func (h *AdminHandler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	requests, err := h.gateway.ListWithdrawals(r.Context(), r.Header.Get(adminIDHeader))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": requests})
}

// ApproveWithdrawal approves a pending withdrawal request.
// POST /admin/withdrawals/{requestID}/approve
func (h *AdminHandler) ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	request, err := h.gateway.ApproveWithdrawal(r.Context(), r.Header.Get(adminIDHeader), chi.URLParam(r, "requestID"))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, request)
}

// RejectWithdrawal rejects a pending withdrawal request and returns the
// reserved funds.
// POST /admin/withdrawals/{requestID}/reject
func (h *AdminHandler) RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	request, err := h.gateway.RejectWithdrawal(r.Context(), r.Header.Get(adminIDHeader), chi.URLParam(r, "requestID"))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, request)
}

// CreatePackageRequest represents the request body for package creation.
type CreatePackageRequest struct {
	Name         string          `json:"name" validate:"required"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	ReturnAmount decimal.Decimal `json:"return_amount" validate:"required"`
	DurationDays int             `json:"duration_days" validate:"required,gt=0"`
	MaxPurchases int             `json:"max_purchases"` // Defaults when omitted
}

// CreatePackage creates a new investment package offer.
// POST /admin/packages
func (h *AdminHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req CreatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	pkg, err := h.gateway.CreatePackage(r.Context(), r.Header.Get(adminIDHeader),
		req.Name, req.Amount, req.ReturnAmount, req.DurationDays, req.MaxPurchases)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, pkg)
}

// TogglePackageRequest represents the request body for the active toggle.
type TogglePackageRequest struct {
	Active bool `json:"active"`
}

// TogglePackage flips a package's active flag.
// POST /admin/packages/{packageID}/toggle
func (h *AdminHandler) TogglePackage(w http.ResponseWriter, r *http.Request) {
	var req TogglePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	packageID := chi.URLParam(r, "packageID")
	if err := h.gateway.SetPackageActive(r.Context(), r.Header.Get(adminIDHeader), packageID, req.Active); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"package_id": packageID,
		"is_active":  req.Active,
	})
}
