// internal/repository/investment_repo.go
package repository

import (
	"context"

	"investx-ledger/internal/domain"
)

// InvestmentRepository defines the interface for investment data operations.
type InvestmentRepository interface {
	// CreateInvestment adds a new investment record.
	CreateInvestment(ctx context.Context, q DBExecutor, investment *domain.Investment) error
	// CountByAccountAndPackage returns how many investments the account holds
	// for the given package.
	CountByAccountAndPackage(ctx context.Context, q DBExecutor, accountID, packageID string) (int, error)
	// ListByAccount returns the account's investments, newest first.
	ListByAccount(ctx context.Context, q DBExecutor, accountID string) ([]domain.Investment, error)
}
