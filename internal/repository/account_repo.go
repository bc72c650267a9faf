// internal/repository/account_repo.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"investx-ledger/internal/domain"
)

// AccountRepository defines the interface for account data operations.
type AccountRepository interface {
	// CreateAccount adds a new account. Returns util.ErrDuplicateEntry when
	// the referral code collides with an existing one.
	CreateAccount(ctx context.Context, q DBExecutor, account *domain.Account) error
	// GetAccountByID retrieves an account by its ID.
	GetAccountByID(ctx context.Context, q DBExecutor, id string) (*domain.Account, error)
	// GetAccountForUpdate retrieves an account and takes a row lock on it.
	// Must be called inside a transaction; the lock serializes all balance
	// mutations on the same account.
	GetAccountForUpdate(ctx context.Context, q DBExecutor, id string) (*domain.Account, error)
	// GetAccountByReferralCode resolves a referral code to its owner.
	GetAccountByReferralCode(ctx context.Context, q DBExecutor, code string) (*domain.Account, error)
	// ListAccounts returns all accounts, newest first.
	ListAccounts(ctx context.Context, q DBExecutor) ([]domain.Account, error)
	// ApplyBalanceDelta atomically applies a signed delta to the wallet
	// balance, guarded so the balance can never go negative. Returns
	// util.ErrInsufficientFunds when the guard rejects the update.
	ApplyBalanceDelta(ctx context.Context, q DBExecutor, id string, delta decimal.Decimal) error
	// SetActive flips the soft-activation flag.
	SetActive(ctx context.Context, q DBExecutor, id string, active bool) error
}
