// internal/repository/postgres/ledger_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"investx-ledger/internal/domain"
	"investx-ledger/internal/repository"
)

// LedgerRepository implements repository.LedgerRepository for PostgreSQL.
type LedgerRepository struct{}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db *sqlx.DB) repository.LedgerRepository {
	return &LedgerRepository{}
}

// CreateEntry records a committed balance mutation using the provided DBExecutor.
func (r *LedgerRepository) CreateEntry(ctx context.Context, q repository.DBExecutor, entry *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (id, account_id, direction, amount, reason, created_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := q.ExecContext(ctx, query,
		entry.ID,
		entry.AccountID,
		entry.Direction,
		entry.Amount,
		entry.Reason,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}
	return nil
}

// ListByAccount returns the account's ledger entries in commit order.
func (r *LedgerRepository) ListByAccount(ctx context.Context, q repository.DBExecutor, accountID string) ([]domain.LedgerEntry, error) {
	entries := []domain.LedgerEntry{}
	query := `SELECT id, account_id, direction, amount, reason, created_at
              FROM ledger_entries WHERE account_id = $1 ORDER BY created_at ASC`
	if err := q.SelectContext(ctx, &entries, query, accountID); err != nil {
		return nil, fmt.Errorf("failed to list ledger entries for account %s: %w", accountID, err)
	}
	return entries, nil
}

// NetBalance returns the sum of credits minus debits for the account.
func (r *LedgerRepository) NetBalance(ctx context.Context, q repository.DBExecutor, accountID string) (decimal.Decimal, error) {
	var net decimal.Decimal
	query := `SELECT COALESCE(SUM(CASE WHEN direction = 'credit' THEN amount ELSE -amount END), 0)
              FROM ledger_entries WHERE account_id = $1`
	if err := q.GetContext(ctx, &net, query, accountID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute net ledger balance for account %s: %w", accountID, err)
	}
	return net, nil
}
