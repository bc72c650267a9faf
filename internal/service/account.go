// internal/service/account.go
package service

import (
	"context"
	"errors"
	"fmt"

	"investx-ledger/internal/domain"
	"investx-ledger/internal/repository"
	"investx-ledger/internal/util"
	"investx-ledger/pkg/db"
)

// AccountService handles member registration and profile reads.
type AccountService interface {
	// Register creates a new account with a zero balance and a fresh referral
	// code. The account starts inactive and must be activated by an
	// administrator. An unknown referral code is treated as "no referrer",
	// not an error.
	Register(ctx context.Context, firstName, lastName, phone, referredByCode string) (*domain.Account, error)
	// GetAccount returns the account by id.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
}

type accountService struct {
	txRunner
	dbExecutor  repository.DBExecutor
	accountRepo repository.AccountRepository
	referrals   ReferralRegistry
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	accountRepo repository.AccountRepository,
	referrals ReferralRegistry,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) AccountService {
	return &accountService{
		txRunner:    newTxRunner(dbBeginner, beginTx, commitTx, rollbackTx),
		dbExecutor:  dbExecutor,
		accountRepo: accountRepo,
		referrals:   referrals,
	}
}

func (s *accountService) Register(ctx context.Context, firstName, lastName, phone, referredByCode string) (*domain.Account, error) {
	if firstName == "" || lastName == "" || phone == "" {
		return nil, util.ErrInvalidInput
	}

	var referredBy *string
	if referredByCode != "" {
		referrerID, err := s.referrals.Resolve(ctx, referredByCode)
		switch {
		case err == nil:
			referredBy = &referrerID
		case errors.Is(err, util.ErrNotFound):
			// Unknown code: register without a referrer.
		default:
			return nil, fmt.Errorf("register: %w", err)
		}
	}

	// The unique constraint on referral_code is the real uniqueness guard;
	// Generate's pre-check just keeps collisions rare. Retry the insert once
	// if a concurrent registration grabbed the same code.
	var account *domain.Account
	for attempt := 0; attempt < 2; attempt++ {
		code, err := s.referrals.Generate(ctx)
		if err != nil {
			return nil, fmt.Errorf("register: %w", err)
		}

		account = domain.NewAccount(firstName, lastName, phone, code, referredBy)
		err = s.inTx(ctx, func(q repository.DBExecutor) error {
			return s.accountRepo.CreateAccount(ctx, q, account)
		})
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, util.ErrDuplicateEntry) {
			return nil, fmt.Errorf("register: %w", err)
		}
	}
	return nil, fmt.Errorf("register: %w", util.ErrDuplicateEntry)
}

func (s *accountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.GetAccountByID(ctx, s.dbExecutor, accountID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}
