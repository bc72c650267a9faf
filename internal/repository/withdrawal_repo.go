// internal/repository/withdrawal_repo.go
package repository

import (
	"context"
	"time"

	"investx-ledger/internal/domain"
)

// WithdrawalRepository defines the interface for withdrawal request data operations.
type WithdrawalRepository interface {
	// CreateRequest adds a new pending withdrawal request.
	CreateRequest(ctx context.Context, q DBExecutor, request *domain.WithdrawalRequest) error
	// GetRequestByID retrieves a withdrawal request by its ID.
	GetRequestByID(ctx context.Context, q DBExecutor, id string) (*domain.WithdrawalRequest, error)
	// GetRequestForUpdate retrieves a withdrawal request and takes a row lock
	// on it. Must be called inside a transaction.
	GetRequestForUpdate(ctx context.Context, q DBExecutor, id string) (*domain.WithdrawalRequest, error)
	// MarkProcessed moves a pending request to a terminal status. The update
	// is conditional on the current status still being pending; returns
	// util.ErrNotPending when the request has already been processed.
	MarkProcessed(ctx context.Context, q DBExecutor, id string, status domain.WithdrawalStatus, processedAt time.Time, processedBy string) error
	// ListByAccount returns the account's requests ordered by requested_at desc.
	ListByAccount(ctx context.Context, q DBExecutor, accountID string) ([]domain.WithdrawalRequest, error)
	// ListAll returns all requests ordered by requested_at desc.
	ListAll(ctx context.Context, q DBExecutor) ([]domain.WithdrawalRequest, error)
}
