// internal/repository/postgres/package_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"investx-ledger/internal/domain"
	"investx-ledger/internal/repository"
	"investx-ledger/internal/util"
)

// PackageRepository implements repository.PackageRepository for PostgreSQL.
type PackageRepository struct{}

// NewPackageRepository creates a new PackageRepository.
func NewPackageRepository(db *sqlx.DB) repository.PackageRepository {
	return &PackageRepository{}
}

// CreatePackage inserts a new package using the provided DBExecutor.
func (r *PackageRepository) CreatePackage(ctx context.Context, q repository.DBExecutor, pkg *domain.Package) error {
	query := `INSERT INTO packages (id, name, amount, return_amount, duration_days, max_purchases, is_active, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := q.ExecContext(ctx, query,
		pkg.ID,
		pkg.Name,
		pkg.Amount,
		pkg.ReturnAmount,
		pkg.DurationDays,
		pkg.MaxPurchases,
		pkg.IsActive,
		pkg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}

// GetPackageByID retrieves a package by its ID using the provided DBExecutor.
func (r *PackageRepository) GetPackageByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Package, error) {
	var pkg domain.Package
	query := `SELECT id, name, amount, return_amount, duration_days, max_purchases, is_active, created_at
              FROM packages WHERE id = $1`
	err := q.GetContext(ctx, &pkg, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get package %s: %w", id, err)
	}
	return &pkg, nil
}

// ListPackages returns packages, newest first, optionally only active ones.
func (r *PackageRepository) ListPackages(ctx context.Context, q repository.DBExecutor, activeOnly bool) ([]domain.Package, error) {
	packages := []domain.Package{}
	query := `SELECT id, name, amount, return_amount, duration_days, max_purchases, is_active, created_at
              FROM packages`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC`
	if err := q.SelectContext(ctx, &packages, query); err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}

// SetActive toggles the package's active flag.
func (r *PackageRepository) SetActive(ctx context.Context, q repository.DBExecutor, id string, active bool) error {
	query := `UPDATE packages SET is_active = $1 WHERE id = $2`
	result, err := q.ExecContext(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("failed to set active flag for package %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for package %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
