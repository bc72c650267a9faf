// internal/service/admin.go
package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"investx-ledger/internal/domain"
	"investx-ledger/internal/repository"
	"investx-ledger/internal/util"
)

// AdminPolicy decides whether an identity carries the administrator
// capability. The determination itself lives outside this core; the gateway
// only consumes the answer.
type AdminPolicy interface {
	IsAdmin(identity string) bool
}

// AllowListPolicy is an AdminPolicy backed by a fixed set of identities,
// typically loaded from configuration.
type AllowListPolicy struct {
	identities map[string]struct{}
}

// NewAllowListPolicy creates an AllowListPolicy from the given identities.
func NewAllowListPolicy(identities []string) *AllowListPolicy {
	set := make(map[string]struct{}, len(identities))
	for _, id := range identities {
		set[id] = struct{}{}
	}
	return &AllowListPolicy{identities: set}
}

// IsAdmin reports whether the identity is on the allow list.
func (p *AllowListPolicy) IsAdmin(identity string) bool {
	_, ok := p.identities[identity]
	return ok
}

// AdminGateway is the authorization and dispatch layer in front of the
// withdrawal state machine, account activation, package management and
// out-of-band wallet adjustments. Every call must carry a resolved admin
// identity; anything else fails with ErrUnauthorized.
type AdminGateway interface {
	ApproveWithdrawal(ctx context.Context, adminID, requestID string) (*domain.WithdrawalRequest, error)
	RejectWithdrawal(ctx context.Context, adminID, requestID string) (*domain.WithdrawalRequest, error)
	// AdjustWallet credits the account when amount is positive and debits it
	// when negative. A debit that would overdraw fails with
	// ErrInsufficientFunds.
	AdjustWallet(ctx context.Context, adminID, accountID string, amount decimal.Decimal) (*domain.Account, error)
	SetAccountActive(ctx context.Context, adminID, accountID string, active bool) error
	ListAccounts(ctx context.Context, adminID string) ([]domain.Account, error)
	// AccountLedger returns the account's full audit trail and the net of its
	// entries. The net must always equal the stored wallet balance.
	AccountLedger(ctx context.Context, adminID, accountID string) ([]domain.LedgerEntry, decimal.Decimal, error)
	ListWithdrawals(ctx context.Context, adminID string) ([]domain.WithdrawalRequest, error)
	CreatePackage(ctx context.Context, adminID, name string, amount, returnAmount decimal.Decimal, durationDays, maxPurchases int) (*domain.Package, error)
	SetPackageActive(ctx context.Context, adminID, packageID string, active bool) error
}

type adminGateway struct {
	policy      AdminPolicy
	dbExecutor  repository.DBExecutor
	accountRepo repository.AccountRepository
	ledgerRepo  repository.LedgerRepository
	ledger      WalletLedger
	withdrawals WithdrawalService
	investments InvestmentService
}

// NewAdminGateway creates a new AdminGateway.
func NewAdminGateway(
	policy AdminPolicy,
	dbExecutor repository.DBExecutor,
	accountRepo repository.AccountRepository,
	ledgerRepo repository.LedgerRepository,
	ledger WalletLedger,
	withdrawals WithdrawalService,
	investments InvestmentService,
) AdminGateway {
	return &adminGateway{
		policy:      policy,
		dbExecutor:  dbExecutor,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		ledger:      ledger,
		withdrawals: withdrawals,
		investments: investments,
	}
}

// authorize rejects calls that do not carry a resolved admin identity.
func (g *adminGateway) authorize(adminID string) error {
	if adminID == "" || !g.policy.IsAdmin(adminID) {
		return util.ErrUnauthorized
	}
	return nil
}

func (g *adminGateway) ApproveWithdrawal(ctx context.Context, adminID, requestID string) (*domain.WithdrawalRequest, error) {
	if err := g.authorize(adminID); err != nil {
		return nil, err
	}
	return g.withdrawals.Approve(ctx, requestID, adminID)
}

func (g *adminGateway) RejectWithdrawal(ctx context.Context, adminID, requestID string) (*domain.WithdrawalRequest, error) {
	if err := g.authorize(adminID); err != nil {
		return nil, err
	}
	return g.withdrawals.Reject(ctx, requestID, adminID)
}

func (g *adminGateway) AdjustWallet(ctx context.Context, adminID, accountID string, amount decimal.Decimal) (*domain.Account, error) {
	if err := g.authorize(adminID); err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, util.ErrInvalidAmount
	}
	if amount.IsNegative() {
		return g.ledger.Debit(ctx, accountID, amount.Neg(), domain.LedgerReasonAdminAdjust)
	}
	return g.ledger.Credit(ctx, accountID, amount, domain.LedgerReasonAdminAdjust)
}

func (g *adminGateway) SetAccountActive(ctx context.Context, adminID, accountID string, active bool) error {
	if err := g.authorize(adminID); err != nil {
		return err
	}
	if err := g.accountRepo.SetActive(ctx, g.dbExecutor, accountID, active); err != nil {
		return fmt.Errorf("set account active: %w", err)
	}
	return nil
}

func (g *adminGateway) ListAccounts(ctx context.Context, adminID string) ([]domain.Account, error) {
	if err := g.authorize(adminID); err != nil {
		return nil, err
	}
	accounts, err := g.accountRepo.ListAccounts(ctx, g.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

func (g *adminGateway) AccountLedger(ctx context.Context, adminID, accountID string) ([]domain.LedgerEntry, decimal.Decimal, error) {
	if err := g.authorize(adminID); err != nil {
		return nil, decimal.Zero, err
	}
	if _, err := g.accountRepo.GetAccountByID(ctx, g.dbExecutor, accountID); err != nil {
		return nil, decimal.Zero, fmt.Errorf("account ledger: %w", err)
	}
	entries, err := g.ledgerRepo.ListByAccount(ctx, g.dbExecutor, accountID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("account ledger: %w", err)
	}
	net, err := g.ledgerRepo.NetBalance(ctx, g.dbExecutor, accountID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("account ledger: %w", err)
	}
	return entries, net, nil
}

func (g *adminGateway) ListWithdrawals(ctx context.Context, adminID string) ([]domain.WithdrawalRequest, error) {
	if err := g.authorize(adminID); err != nil {
		return nil, err
	}
	return g.withdrawals.ListAll(ctx)
}

func (g *adminGateway) CreatePackage(ctx context.Context, adminID, name string, amount, returnAmount decimal.Decimal, durationDays, maxPurchases int) (*domain.Package, error) {
	if err := g.authorize(adminID); err != nil {
		return nil, err
	}
	return g.investments.CreatePackage(ctx, name, amount, returnAmount, durationDays, maxPurchases)
}

func (g *adminGateway) SetPackageActive(ctx context.Context, adminID, packageID string, active bool) error {
	if err := g.authorize(adminID); err != nil {
		return err
	}
	return g.investments.SetPackageActive(ctx, packageID, active)
}
