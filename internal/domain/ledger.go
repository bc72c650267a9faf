// internal/domain/ledger.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerDirection marks a ledger entry as a credit or a debit.
type LedgerDirection string

const (
	LedgerDirectionCredit LedgerDirection = "credit"
	LedgerDirectionDebit  LedgerDirection = "debit"
)

// Well-known ledger reasons. The reason is an opaque audit tag and is never
// interpreted by the ledger itself.
const (
	LedgerReasonPurchase         = "purchase"
	LedgerReasonWithdrawal       = "withdrawal"
	LedgerReasonWithdrawalReject = "withdrawal-reject"
	LedgerReasonAdminAdjust      = "admin-adjust"
)

// LedgerEntry records a single committed balance mutation. The wallet balance
// of every account must equal the net of its entries at all times.
type LedgerEntry struct {
	ID        string          `db:"id" json:"id"`
	AccountID string          `db:"account_id" json:"account_id"`
	Direction LedgerDirection `db:"direction" json:"direction"`
	Amount    decimal.Decimal `db:"amount" json:"amount"` // Always positive
	Reason    string          `db:"reason" json:"reason"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// NewLedgerEntry creates a ledger entry for a balance mutation.
func NewLedgerEntry(accountID string, direction LedgerDirection, amount decimal.Decimal, reason string) *LedgerEntry {
	return &LedgerEntry{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Direction: direction,
		Amount:    amount,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
}
