// internal/service/ledger.go
package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"investx-ledger/internal/domain"
	"investx-ledger/internal/repository"
	"investx-ledger/internal/util"
	"investx-ledger/pkg/db"
)

// maxWalletBalance caps a wallet at 10^18, two orders of magnitude under the
// NUMERIC(20, 0) column maximum, so sums of capped balances still fit the
// column.
var maxWalletBalance = decimal.New(1, 18)

// WalletLedger owns the balance invariants. It is the only component that
// mutates a wallet balance, and every mutation is recorded as a ledger entry
// in the same transaction.
type WalletLedger interface {
	// Debit removes amount from the account's balance. Fails with
	// ErrInsufficientFunds when the balance would go negative.
	Debit(ctx context.Context, accountID string, amount decimal.Decimal, reason string) (*domain.Account, error)
	// Credit adds amount to the account's balance.
	Credit(ctx context.Context, accountID string, amount decimal.Decimal, reason string) (*domain.Account, error)
	// DebitTx and CreditTx apply the same mutation inside a caller-owned
	// transaction, so a debit can commit or roll back as a unit with the
	// caller's own writes.
	DebitTx(ctx context.Context, q repository.DBExecutor, accountID string, amount decimal.Decimal, reason string) (*domain.Account, error)
	CreditTx(ctx context.Context, q repository.DBExecutor, accountID string, amount decimal.Decimal, reason string) (*domain.Account, error)
}

type walletLedger struct {
	txRunner
	accountRepo repository.AccountRepository
	ledgerRepo  repository.LedgerRepository
}

// NewWalletLedger creates a new WalletLedger.
func NewWalletLedger(
	dbBeginner db.DBTxBeginner,
	accountRepo repository.AccountRepository,
	ledgerRepo repository.LedgerRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) WalletLedger {
	return &walletLedger{
		txRunner:    newTxRunner(dbBeginner, beginTx, commitTx, rollbackTx),
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

func (l *walletLedger) Debit(ctx context.Context, accountID string, amount decimal.Decimal, reason string) (*domain.Account, error) {
	var account *domain.Account
	err := l.inTx(ctx, func(q repository.DBExecutor) error {
		var txErr error
		account, txErr = l.DebitTx(ctx, q, accountID, amount, reason)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (l *walletLedger) Credit(ctx context.Context, accountID string, amount decimal.Decimal, reason string) (*domain.Account, error) {
	var account *domain.Account
	err := l.inTx(ctx, func(q repository.DBExecutor) error {
		var txErr error
		account, txErr = l.CreditTx(ctx, q, accountID, amount, reason)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// DebitTx locks the account row, verifies the balance and applies the debit.
// The row lock plus the guarded update mean no concurrent debit pair on the
// same account can both observe the same stale balance.
func (l *walletLedger) DebitTx(ctx context.Context, q repository.DBExecutor, accountID string, amount decimal.Decimal, reason string) (*domain.Account, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}

	account, err := l.accountRepo.GetAccountForUpdate(ctx, q, accountID)
	if err != nil {
		return nil, fmt.Errorf("debit: %w", err)
	}
	if account.WalletBalance.LessThan(amount) {
		return nil, util.ErrInsufficientFunds
	}

	if err := l.accountRepo.ApplyBalanceDelta(ctx, q, accountID, amount.Neg()); err != nil {
		return nil, fmt.Errorf("debit: %w", err)
	}

	entry := domain.NewLedgerEntry(accountID, domain.LedgerDirectionDebit, amount, reason)
	if err := l.ledgerRepo.CreateEntry(ctx, q, entry); err != nil {
		return nil, fmt.Errorf("debit: failed to record ledger entry: %w", err)
	}

	account.WalletBalance = account.WalletBalance.Sub(amount)
	return account, nil
}

// CreditTx locks the account row and applies the credit. Credits are bounded
// only by maxWalletBalance.
func (l *walletLedger) CreditTx(ctx context.Context, q repository.DBExecutor, accountID string, amount decimal.Decimal, reason string) (*domain.Account, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}

	account, err := l.accountRepo.GetAccountForUpdate(ctx, q, accountID)
	if err != nil {
		return nil, fmt.Errorf("credit: %w", err)
	}
	if account.WalletBalance.Add(amount).GreaterThan(maxWalletBalance) {
		return nil, util.ErrInvalidAmount
	}

	if err := l.accountRepo.ApplyBalanceDelta(ctx, q, accountID, amount); err != nil {
		return nil, fmt.Errorf("credit: %w", err)
	}

	entry := domain.NewLedgerEntry(accountID, domain.LedgerDirectionCredit, amount, reason)
	if err := l.ledgerRepo.CreateEntry(ctx, q, entry); err != nil {
		return nil, fmt.Errorf("credit: failed to record ledger entry: %w", err)
	}

	account.WalletBalance = account.WalletBalance.Add(amount)
	return account, nil
}
