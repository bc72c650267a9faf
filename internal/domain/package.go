// internal/domain/package.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultMaxPurchases is applied when a package is created without an
// explicit per-account purchase cap.
const DefaultMaxPurchases = 3

// Package represents an admin-defined investment offer with a fixed
// principal, payout and duration. Immutable once created except for the
// IsActive toggle.
type Package struct {
	ID           string          `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Amount       decimal.Decimal `db:"amount" json:"amount"`               // Principal
	ReturnAmount decimal.Decimal `db:"return_amount" json:"return_amount"` // Payout at maturity, >= Amount
	DurationDays int             `db:"duration_days" json:"duration_days"`
	MaxPurchases int             `db:"max_purchases" json:"max_purchases"` // Per-account purchase cap
	IsActive     bool            `db:"is_active" json:"is_active"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// NewPackage creates a new Package instance.
func NewPackage(name string, amount, returnAmount decimal.Decimal, durationDays, maxPurchases int) *Package {
	if maxPurchases <= 0 {
		maxPurchases = DefaultMaxPurchases
	}
	return &Package{
		ID:           uuid.NewString(),
		Name:         name,
		Amount:       amount,
		ReturnAmount: returnAmount,
		DurationDays: durationDays,
		MaxPurchases: maxPurchases,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
}
