// internal/repository/postgres/account_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"investx-ledger/internal/domain"
	"investx-ledger/internal/repository"
	"investx-ledger/internal/util"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// AccountRepository implements repository.AccountRepository for PostgreSQL.
type AccountRepository struct{}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &AccountRepository{}
}

// CreateAccount inserts a new account using the provided DBExecutor.
func (r *AccountRepository) CreateAccount(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	query := `INSERT INTO accounts (id, first_name, last_name, phone, referral_code, referred_by, wallet_balance, is_active, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := q.ExecContext(ctx, query,
		account.ID,
		account.FirstName,
		account.LastName,
		account.Phone,
		account.ReferralCode,
		account.ReferredBy,
		account.WalletBalance,
		account.IsActive,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return util.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetAccountByID retrieves an account by its ID using the provided DBExecutor.
func (r *AccountRepository) GetAccountByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT id, first_name, last_name, phone, referral_code, referred_by, wallet_balance, is_active, created_at, updated_at
              FROM accounts WHERE id = $1`
	err := q.GetContext(ctx, &account, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account %s: %w", id, err)
	}
	return &account, nil
}

// GetAccountForUpdate retrieves an account with a FOR UPDATE row lock.
// The lock serializes concurrent balance mutations on the same account while
// leaving other accounts untouched.
func (r *AccountRepository) GetAccountForUpdate(ctx context.Context, q repository.DBExecutor, id string) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT id, first_name, last_name, phone, referral_code, referred_by, wallet_balance, is_active, created_at, updated_at
              FROM accounts WHERE id = $1 FOR UPDATE`
	err := q.GetContext(ctx, &account, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account %s: %w", id, err)
	}
	return &account, nil
}

// GetAccountByReferralCode resolves a referral code to its owner.
func (r *AccountRepository) GetAccountByReferralCode(ctx context.Context, q repository.DBExecutor, code string) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT id, first_name, last_name, phone, referral_code, referred_by, wallet_balance, is_active, created_at, updated_at
              FROM accounts WHERE referral_code = $1`
	err := q.GetContext(ctx, &account, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by referral code: %w", err)
	}
	return &account, nil
}

// ListAccounts returns all accounts, newest first.
func (r *AccountRepository) ListAccounts(ctx context.Context, q repository.DBExecutor) ([]domain.Account, error) {
	accounts := []domain.Account{}
	query := `SELECT id, first_name, last_name, phone, referral_code, referred_by, wallet_balance, is_active, created_at, updated_at
              FROM accounts ORDER BY created_at DESC`
	if err := q.SelectContext(ctx, &accounts, query); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// ApplyBalanceDelta applies a signed delta to the wallet balance as a single
// conditional update. The guard keeps the balance non-negative even if the
// caller's own balance check raced with another writer.
func (r *AccountRepository) ApplyBalanceDelta(ctx context.Context, q repository.DBExecutor, id string, delta decimal.Decimal) error {
	query := `UPDATE accounts
              SET wallet_balance = wallet_balance + $1, updated_at = $2
              WHERE id = $3 AND wallet_balance + $1 >= 0`
	result, err := q.ExecContext(ctx, query, delta, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update wallet balance for account %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for account %s: %w", id, err)
	}
	if rowsAffected == 0 {
		// Either the account does not exist or the guard rejected the delta.
		if _, getErr := r.GetAccountByID(ctx, q, id); getErr != nil {
			return getErr
		}
		return util.ErrInsufficientFunds
	}
	return nil
}

// SetActive flips the soft-activation flag.
func (r *AccountRepository) SetActive(ctx context.Context, q repository.DBExecutor, id string, active bool) error {
	query := `UPDATE accounts SET is_active = $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, active, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to set active flag for account %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for account %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
