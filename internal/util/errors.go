// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound               = errors.New("resource not found")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidInput           = errors.New("invalid input provided")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrPackageInactive        = errors.New("package is not active")
	ErrPurchaseLimitReached   = errors.New("purchase limit reached for this package")
	ErrAccountInactive        = errors.New("account is not active")
	ErrWithdrawalWindowClosed = errors.New("withdrawals are only allowed Monday through Friday")
	ErrNotPending             = errors.New("withdrawal request is not pending")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrDuplicateEntry         = errors.New("duplicate entry")
	ErrStoreConflict          = errors.New("store conflict")    // transient, safe to retry
	ErrStoreUnavailable       = errors.New("store unavailable") // transient, surfaced after bounded retries
)

// IsError reports whether err wraps target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
