// internal/repository/package_repo.go
package repository

import (
	"context"

	"investx-ledger/internal/domain"
)

// PackageRepository defines the interface for investment package data operations.
type PackageRepository interface {
	// CreatePackage adds a new package.
	CreatePackage(ctx context.Context, q DBExecutor, pkg *domain.Package) error
	// GetPackageByID retrieves a package by its ID.
	GetPackageByID(ctx context.Context, q DBExecutor, id string) (*domain.Package, error)
	// ListPackages returns packages, newest first, optionally only active ones.
	ListPackages(ctx context.Context, q DBExecutor, activeOnly bool) ([]domain.Package, error)
	// SetActive toggles the package's active flag.
	SetActive(ctx context.Context, q DBExecutor, id string, active bool) error
}
