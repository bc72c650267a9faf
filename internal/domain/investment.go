// internal/domain/investment.go
package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvestmentStatus defines the lifecycle status of an investment.
type InvestmentStatus string

const (
	InvestmentStatusActive  InvestmentStatus = "active"
	InvestmentStatusMatured InvestmentStatus = "matured"
)

// Investment is a purchased instance of a Package owned by an Account.
// Amount and ReturnAmount are snapshotted at purchase time so later edits to
// the package never retroactively change an existing investment.
type Investment struct {
	ID           string           `db:"id" json:"id"`
	AccountID    string           `db:"account_id" json:"account_id"`
	PackageID    string           `db:"package_id" json:"package_id"`
	Amount       decimal.Decimal  `db:"amount" json:"amount"`
	ReturnAmount decimal.Decimal  `db:"return_amount" json:"return_amount"`
	StartDate    time.Time        `db:"start_date" json:"start_date"`
	MaturityDate time.Time        `db:"maturity_date" json:"maturity_date"`
	Status       InvestmentStatus `db:"status" json:"status"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
}

// NewInvestment creates a new Investment from a package snapshot.
func NewInvestment(accountID string, pkg *Package) *Investment {
	now := time.Now().UTC()
	return &Investment{
		ID:           uuid.NewString(),
		AccountID:    accountID,
		PackageID:    pkg.ID,
		Amount:       pkg.Amount,
		ReturnAmount: pkg.ReturnAmount,
		StartDate:    now,
		MaturityDate: now.AddDate(0, 0, pkg.DurationDays),
		Status:       InvestmentStatusActive,
		CreatedAt:    now,
	}
}

// CurrentStatus returns the derived status at the given instant. Maturity is
// a read-time fact, not a stored transition.
func (i *Investment) CurrentStatus(now time.Time) InvestmentStatus {
	if !now.Before(i.MaturityDate) {
		return InvestmentStatusMatured
	}
	return i.Status
}

// Progress returns the maturity progress as a percentage in [0, 100],
// linearly interpolated between start and maturity.
func (i *Investment) Progress(now time.Time) float64 {
	total := i.MaturityDate.Sub(i.StartDate)
	if total <= 0 {
		return 100
	}
	elapsed := now.Sub(i.StartDate)
	pct := float64(elapsed) / float64(total) * 100
	return math.Min(math.Max(pct, 0), 100)
}

// DaysRemaining returns the number of whole days until maturity, never
// negative.
func (i *Investment) DaysRemaining(now time.Time) int {
	remaining := i.MaturityDate.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Hours() / 24))
}
