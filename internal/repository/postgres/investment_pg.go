// internal/repository/postgres/investment_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"investx-ledger/internal/domain"
	"investx-ledger/internal/repository"
)

// InvestmentRepository implements repository.InvestmentRepository for PostgreSQL.
type InvestmentRepository struct{}

// NewInvestmentRepository creates a new InvestmentRepository.
func NewInvestmentRepository(db *sqlx.DB) repository.InvestmentRepository {
	return &InvestmentRepository{}
}

// CreateInvestment inserts a new investment record using the provided DBExecutor.
func (r *InvestmentRepository) CreateInvestment(ctx context.Context, q repository.DBExecutor, investment *domain.Investment) error {
	query := `INSERT INTO investments (id, account_id, package_id, amount, return_amount, start_date, maturity_date, status, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := q.ExecContext(ctx, query,
		investment.ID,
		investment.AccountID,
		investment.PackageID,
		investment.Amount,
		investment.ReturnAmount,
		investment.StartDate,
		investment.MaturityDate,
		investment.Status,
		investment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create investment: %w", err)
	}
	return nil
}

// CountByAccountAndPackage returns how many investments the account holds for
// the given package.
func (r *InvestmentRepository) CountByAccountAndPackage(ctx context.Context, q repository.DBExecutor, accountID, packageID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM investments WHERE account_id = $1 AND package_id = $2`
	if err := q.GetContext(ctx, &count, query, accountID, packageID); err != nil {
		return 0, fmt.Errorf("failed to count investments for account %s: %w", accountID, err)
	}
	return count, nil
}

// ListByAccount returns the account's investments, newest first.
func (r *InvestmentRepository) ListByAccount(ctx context.Context, q repository.DBExecutor, accountID string) ([]domain.Investment, error) {
	investments := []domain.Investment{}
	query := `SELECT id, account_id, package_id, amount, return_amount, start_date, maturity_date, status, created_at
              FROM investments WHERE account_id = $1 ORDER BY created_at DESC`
	if err := q.SelectContext(ctx, &investments, query, accountID); err != nil {
		return nil, fmt.Errorf("failed to list investments for account %s: %w", accountID, err)
	}
	return investments, nil
}
