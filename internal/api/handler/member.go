// internal/api/handler/member.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"investx-ledger/internal/api/types"
	"investx-ledger/internal/service"
	"investx-ledger/internal/util"
)

// accountIDHeader carries the caller's account id, resolved by the upstream
// identity collaborator. This core never authenticates; it only consumes the
// resolved identity.
const accountIDHeader = "X-Account-ID"

// MemberHandler handles member-facing wallet, investment and withdrawal requests.
type MemberHandler struct {
	accounts    service.AccountService
	investments service.InvestmentService
	withdrawals service.WithdrawalService
	logger      *slog.Logger
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(
	accounts service.AccountService,
	investments service.InvestmentService,
	withdrawals service.WithdrawalService,
	logger *slog.Logger,
) *MemberHandler {
	return &MemberHandler{
		accounts:    accounts,
		investments: investments,
		withdrawals: withdrawals,
		logger:      logger,
	}
}

// callerAccountID extracts the resolved account identity or fails the request.
func (h *MemberHandler) callerAccountID(w http.ResponseWriter, r *http.Request) (string, bool) {
	accountID := r.Header.Get(accountIDHeader)
	if accountID == "" {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return "", false
	}
	return accountID, true
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	ReferralCode string `json:"referral_code"` // Optional referrer code
}

// Register handles new member registration.
// POST /register
func (h *MemberHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	account, err := h.accounts.Register(r.Context(), req.FirstName, req.LastName, req.Phone, req.ReferralCode)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, account)
}

// GetProfile returns the caller's account.
// GET /me
func (h *MemberHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.callerAccountID(w, r)
	if !ok {
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), accountID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, account)
}

// ListPackages returns the active packages available for purchase.
// GET /packages
func (h *MemberHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.investments.ListPackages(r.Context(), true)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": packages})
}

// ListInvestments returns the caller's investments with maturity progress.
// GET /me/investments
func (h *MemberHandler) ListInvestments(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.callerAccountID(w, r)
	if !ok {
		return
	}

	investments, err := h.investments.ListInvestments(r.Context(), accountID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	now := time.Now().UTC()
	views := make([]types.InvestmentView, 0, len(investments))
	for _, inv := range investments {
		views = append(views, types.NewInvestmentView(inv, now))
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": views})
}

// PurchaseRequest represents the request body for a package purchase.
type PurchaseRequest struct {
	PackageID string `json:"package_id" validate:"required,uuid4"`
}

// Purchase buys an investment package for the caller.
// POST /me/investments
func (h *MemberHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.callerAccountID(w, r)
	if !ok {
		return
	}

	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	investment, err := h.investments.Purchase(r.Context(), accountID, req.PackageID, false)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, investment)
}

// ListWithdrawals returns the caller's withdrawal requests, newest first.
// GET /me/withdrawals
func (h *MemberHandler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.callerAccountID(w, r)
	if !ok {
		return
	}

	requests, err := h.withdrawals.ListByAccount(r.Context(), accountID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": requests})
}

// WithdrawalRequestBody represents the request body for a withdrawal.
type WithdrawalRequestBody struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// RequestWithdrawal creates a pending withdrawal request and reserves the funds.
// POST /me/withdrawals
func (h *MemberHandler) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.callerAccountID(w, r)
	if !ok {
		return
	}

	var req WithdrawalRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	request, err := h.withdrawals.Request(r.Context(), accountID, req.Amount)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, request)
}
