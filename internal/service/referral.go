// internal/service/referral.go
package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"investx-ledger/internal/repository"
	"investx-ledger/internal/util"
)

// referralCodeLength is the length of generated referral codes.
const referralCodeLength = 8

// referralCodeCharset avoids ambiguous characters (0/O, 1/I/L).
const referralCodeCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// ReferralRegistry assigns referral codes at account creation and resolves
// codes back to their owners. Uniqueness is a hard invariant enforced by the
// store's unique constraint; Generate retries on collision.
type ReferralRegistry interface {
	// Generate produces a code that does not belong to any existing account.
	Generate(ctx context.Context) (string, error)
	// Resolve returns the account id owning the code, or ErrNotFound.
	Resolve(ctx context.Context, code string) (string, error)
}

type referralRegistry struct {
	dbExecutor  repository.DBExecutor
	accountRepo repository.AccountRepository
}

// NewReferralRegistry creates a new ReferralRegistry.
func NewReferralRegistry(dbExecutor repository.DBExecutor, accountRepo repository.AccountRepository) ReferralRegistry {
	return &referralRegistry{
		dbExecutor:  dbExecutor,
		accountRepo: accountRepo,
	}
}

// maxGenerateAttempts bounds collision retries. With 31^8 possible codes a
// second collision in a row is already vanishingly unlikely.
const maxGenerateAttempts = 5

func (r *referralRegistry) Generate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		code, err := randomCode(referralCodeLength)
		if err != nil {
			return "", fmt.Errorf("generate referral code: %w", err)
		}

		_, err = r.accountRepo.GetAccountByReferralCode(ctx, r.dbExecutor, code)
		if errors.Is(err, util.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("generate referral code: %w", err)
		}
		// Code already taken, try again.
	}
	return "", fmt.Errorf("generate referral code: %w", util.ErrDuplicateEntry)
}

func (r *referralRegistry) Resolve(ctx context.Context, code string) (string, error) {
	account, err := r.accountRepo.GetAccountByReferralCode(ctx, r.dbExecutor, code)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return "", util.ErrNotFound
		}
		return "", fmt.Errorf("resolve referral code: %w", err)
	}
	return account.ID, nil
}

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = referralCodeCharset[int(b)%len(referralCodeCharset)]
	}
	return string(buf), nil
}
