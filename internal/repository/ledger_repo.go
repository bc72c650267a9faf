// internal/repository/ledger_repo.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"investx-ledger/internal/domain"
)

// LedgerRepository defines the interface for ledger entry data operations.
type LedgerRepository interface {
	// CreateEntry records a committed balance mutation.
	CreateEntry(ctx context.Context, q DBExecutor, entry *domain.LedgerEntry) error
	// ListByAccount returns the account's ledger entries in commit order.
	ListByAccount(ctx context.Context, q DBExecutor, accountID string) ([]domain.LedgerEntry, error)
	// NetBalance returns the sum of credits minus debits for the account.
	// Used to audit ledger conservation against the stored balance.
	NetBalance(ctx context.Context, q DBExecutor, accountID string) (decimal.Decimal, error)
}
