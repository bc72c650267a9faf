// internal/service/investment.go
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

// InvestmentService validates and executes package purchases against the
// wallet ledger and per-package purchase caps.
type InvestmentService interface {
	// Purchase buys one instance of the package for the account. Precondition
	// order: account active (administrators bypass), package active, purchase
	// count below the per-package cap, sufficient balance. The debit and the
	// investment insert commit or roll back as a unit.
	Purchase(ctx context.Context, accountID, packageID string, asAdmin bool) (*domain.Investment, error)
	// ListInvestments returns the account's investments, newest first.
	ListInvestments(ctx context.Context, accountID string) ([]domain.Investment, error)
	// ListPackages returns packages, optionally only active ones.
	ListPackages(ctx context.Context, activeOnly bool) ([]domain.Package, error)
	// CreatePackage adds a new package offer. Payout must be at least the
	// principal.
	CreatePackage(ctx context.Context, name string, amount, returnAmount decimal.Decimal, durationDays, maxPurchases int) (*domain.Package, error)
	// SetPackageActive toggles the package's active flag. Existing
	// investments keep their snapshotted terms.
	SetPackageActive(ctx context.Context, packageID string, active bool) error
}

type investmentService struct {
	txRunner
	dbExecutor     repository.DBExecutor
	accountRepo    repository.AccountRepository
	packageRepo    repository.PackageRepository
	investmentRepo repository.InvestmentRepository
	ledger         WalletLedger
}

// NewInvestmentService creates a new InvestmentService.
func NewInvestmentService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	accountRepo repository.AccountRepository,
	packageRepo repository.PackageRepository,
	investmentRepo repository.InvestmentRepository,
	ledger WalletLedger,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) InvestmentService {
	return &investmentService{
		txRunner:       newTxRunner(dbBeginner, beginTx, commitTx, rollbackTx),
		dbExecutor:     dbExecutor,
		accountRepo:    accountRepo,
		packageRepo:    packageRepo,
		investmentRepo: investmentRepo,
		ledger:         ledger,
	}
}

func (s *investmentService) Purchase(ctx context.Context, accountID, packageID string, asAdmin bool) (*domain.Investment, error) {
	var investment *domain.Investment
	err := s.inTx(ctx, func(q repository.DBExecutor) error {
		// Lock the account row first so the purchase-count check and the
		// debit observe a consistent balance.
		account, err := s.accountRepo.GetAccountForUpdate(ctx, q, accountID)
		if err != nil {
			return fmt.Errorf("purchase: %w", err)
		}
		if !account.IsActive && !asAdmin {
			return util.ErrAccountInactive
		}

		pkg, err := s.packageRepo.GetPackageByID(ctx, q, packageID)
		if err != nil {
			return fmt.Errorf("purchase: %w", err)
		}
		if !pkg.IsActive {
			return util.ErrPackageInactive
		}

		count, err := s.investmentRepo.CountByAccountAndPackage(ctx, q, accountID, packageID)
		if err != nil {
			return fmt.Errorf("purchase: %w", err)
		}
		if count >= pkg.MaxPurchases {
			return util.ErrPurchaseLimitReached
		}

		if _, err := s.ledger.DebitTx(ctx, q, accountID, pkg.Amount, domain.LedgerReasonPurchase); err != nil {
			return err
		}

		investment = domain.NewInvestment(accountID, pkg)
		if err := s.investmentRepo.CreateInvestment(ctx, q, investment); err != nil {
			// Rolling back the transaction also undoes the debit.
			return fmt.Errorf("purchase: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return investment, nil
}

func (s *investmentService) ListInvestments(ctx context.Context, accountID string) ([]domain.Investment, error) {
	investments, err := s.investmentRepo.ListByAccount(ctx, s.dbExecutor, accountID)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	return investments, nil
}

func (s *investmentService) ListPackages(ctx context.Context, activeOnly bool) ([]domain.Package, error) {
	packages, err := s.packageRepo.ListPackages(ctx, s.dbExecutor, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	return packages, nil
}

func (s *investmentService) CreatePackage(ctx context.Context, name string, amount, returnAmount decimal.Decimal, durationDays, maxPurchases int) (*domain.Package, error) {
	if name == "" || durationDays <= 0 {
		return nil, util.ErrInvalidInput
	}
	if amount.LessThanOrEqual(decimal.Zero) || returnAmount.LessThan(amount) {
		return nil, util.ErrInvalidAmount
	}

	pkg := domain.NewPackage(name, amount, returnAmount, durationDays, maxPurchases)
	if err := s.packageRepo.CreatePackage(ctx, s.dbExecutor, pkg); err != nil {
		return nil, fmt.Errorf("create package: %w", err)
	}
	return pkg, nil
}

func (s *investmentService) SetPackageActive(ctx context.Context, packageID string, active bool) error {
	if err := s.packageRepo.SetActive(ctx, s.dbExecutor, packageID, active); err != nil {
		return fmt.Errorf("set package active: %w", err)
	}
	return nil
}
