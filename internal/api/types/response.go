// internal/api/types/response.go
package types

import (
	"time"

	"github.com/shopspring/decimal"

	"investx-ledger/internal/domain"
)

// InvestmentView is an Investment enriched with the read-time maturity facts
// shown on the member dashboard.
type InvestmentView struct {
	domain.Investment
	DerivedStatus domain.InvestmentStatus `json:"derived_status"`
	Progress      float64                 `json:"progress"`
	DaysRemaining int                     `json:"days_remaining"`
}

// NewInvestmentView derives the view at the given instant.
func NewInvestmentView(inv domain.Investment, now time.Time) InvestmentView {
	return InvestmentView{
		Investment:    inv,
		DerivedStatus: inv.CurrentStatus(now),
		Progress:      inv.Progress(now),
		DaysRemaining: inv.DaysRemaining(now),
	}
}

// BalanceResponse reports an account's balance after a wallet operation.
type BalanceResponse struct {
	AccountID  string          `json:"account_id"`
	NewBalance decimal.Decimal `json:"new_balance"`
}
