// internal/domain/withdrawal.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WithdrawalStatus defines the status of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
)

// WithdrawalFeeRate is the processing fee charged on every withdrawal.
var WithdrawalFeeRate = decimal.NewFromFloat(0.10)

// WithdrawalRequest is a member's request to move funds out of the wallet.
// The requested amount is debited immediately at request time; approval only
// authorizes the external payout, rejection returns the reserved funds.
type WithdrawalRequest struct {
	ID          string           `db:"id" json:"id"`
	AccountID   string           `db:"account_id" json:"account_id"`
	Amount      decimal.Decimal  `db:"amount" json:"amount"`
	Fee         decimal.Decimal  `db:"fee" json:"fee"`
	NetAmount   decimal.Decimal  `db:"net_amount" json:"net_amount"` // Amount - Fee
	Status      WithdrawalStatus `db:"status" json:"status"`
	RequestedAt time.Time        `db:"requested_at" json:"requested_at"`
	ProcessedAt *time.Time       `db:"processed_at" json:"processed_at"`
	ProcessedBy *string          `db:"processed_by" json:"processed_by"` // Admin identity
}

// NewWithdrawalRequest creates a pending withdrawal request with the fee and
// net amount computed from the requested amount. The caller supplies the
// request instant so the same clock that gated the withdrawal window also
// stamps the request.
func NewWithdrawalRequest(accountID string, amount decimal.Decimal, requestedAt time.Time) *WithdrawalRequest {
	fee := amount.Mul(WithdrawalFeeRate).Round(0)
	return &WithdrawalRequest{
		ID:          uuid.NewString(),
		AccountID:   accountID,
		Amount:      amount,
		Fee:         fee,
		NetAmount:   amount.Sub(fee),
		Status:      WithdrawalStatusPending,
		RequestedAt: requestedAt.UTC(),
	}
}

// IsTerminal reports whether the request has reached a terminal state.
func (w *WithdrawalRequest) IsTerminal() bool {
	return w.Status != WithdrawalStatusPending
}
