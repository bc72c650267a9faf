// internal/domain/account.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents a registered member with a wallet balance.
type Account struct {
	ID            string          `db:"id" json:"id"`
	FirstName     string          `db:"first_name" json:"first_name"`
	LastName      string          `db:"last_name" json:"last_name"`
	Phone         string          `db:"phone" json:"phone"`
	ReferralCode  string          `db:"referral_code" json:"referral_code"` // Unique per account
	ReferredBy    *string         `db:"referred_by" json:"referred_by"`     // Optional back-reference to the referrer's account
	WalletBalance decimal.Decimal `db:"wallet_balance" json:"wallet_balance"`
	IsActive      bool            `db:"is_active" json:"is_active"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// NewAccount creates a new Account instance. Accounts start with a zero
// balance and must be activated by an administrator before they can invest.
func NewAccount(firstName, lastName, phone, referralCode string, referredBy *string) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:            uuid.NewString(),
		FirstName:     firstName,
		LastName:      lastName,
		Phone:         phone,
		ReferralCode:  referralCode,
		ReferredBy:    referredBy,
		WalletBalance: decimal.Zero,
		IsActive:      false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
