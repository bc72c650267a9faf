// internal/repository/postgres/withdrawal_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"investx-ledger/internal/domain"
	"investx-ledger/internal/repository"
	"investx-ledger/internal/util"
)

// WithdrawalRepository implements repository.WithdrawalRepository for PostgreSQL.
type WithdrawalRepository struct{}

// NewWithdrawalRepository creates a new WithdrawalRepository.
func NewWithdrawalRepository(db *sqlx.DB) repository.WithdrawalRepository {
	return &WithdrawalRepository{}
}

const withdrawalColumns = `id, account_id, amount, fee, net_amount, status, requested_at, processed_at, processed_by`

// CreateRequest inserts a new pending withdrawal request using the provided DBExecutor.
func (r *WithdrawalRepository) CreateRequest(ctx context.Context, q repository.DBExecutor, request *domain.WithdrawalRequest) error {
	query := `INSERT INTO withdrawal_requests (id, account_id, amount, fee, net_amount, status, requested_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := q.ExecContext(ctx, query,
		request.ID,
		request.AccountID,
		request.Amount,
		request.Fee,
		request.NetAmount,
		request.Status,
		request.RequestedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create withdrawal request: %w", err)
	}
	return nil
}

// GetRequestByID retrieves a withdrawal request by its ID.
func (r *WithdrawalRepository) GetRequestByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.WithdrawalRequest, error) {
	var request domain.WithdrawalRequest
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE id = $1`
	err := q.GetContext(ctx, &request, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get withdrawal request %s: %w", id, err)
	}
	return &request, nil
}

// GetRequestForUpdate retrieves a withdrawal request with a FOR UPDATE row
// lock, serializing concurrent approve/reject attempts on the same request.
func (r *WithdrawalRepository) GetRequestForUpdate(ctx context.Context, q repository.DBExecutor, id string) (*domain.WithdrawalRequest, error) {
	var request domain.WithdrawalRequest
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE id = $1 FOR UPDATE`
	err := q.GetContext(ctx, &request, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock withdrawal request %s: %w", id, err)
	}
	return &request, nil
}

// MarkProcessed moves a pending request to a terminal status. The WHERE
// clause makes the transition conditional on the request still being pending,
// so a lost race surfaces as ErrNotPending instead of a double transition.
func (r *WithdrawalRepository) MarkProcessed(ctx context.Context, q repository.DBExecutor, id string, status domain.WithdrawalStatus, processedAt time.Time, processedBy string) error {
	query := `UPDATE withdrawal_requests
              SET status = $1, processed_at = $2, processed_by = $3
              WHERE id = $4 AND status = $5`
	result, err := q.ExecContext(ctx, query, status, processedAt, processedBy, id, domain.WithdrawalStatusPending)
	if err != nil {
		return fmt.Errorf("failed to process withdrawal request %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for withdrawal request %s: %w", id, err)
	}
	if rowsAffected == 0 {
		if _, getErr := r.GetRequestByID(ctx, q, id); getErr != nil {
			return getErr
		}
		return util.ErrNotPending
	}
	return nil
}

// ListByAccount returns the account's requests ordered by requested_at desc.
func (r *WithdrawalRepository) ListByAccount(ctx context.Context, q repository.DBExecutor, accountID string) ([]domain.WithdrawalRequest, error) {
	requests := []domain.WithdrawalRequest{}
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE account_id = $1 ORDER BY requested_at DESC`
	if err := q.SelectContext(ctx, &requests, query, accountID); err != nil {
		return nil, fmt.Errorf("failed to list withdrawal requests for account %s: %w", accountID, err)
	}
	return requests, nil
}

// ListAll returns all requests ordered by requested_at desc.
func (r *WithdrawalRepository) ListAll(ctx context.Context, q repository.DBExecutor) ([]domain.WithdrawalRequest, error) {
	requests := []domain.WithdrawalRequest{}
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests ORDER BY requested_at DESC`
	if err := q.SelectContext(ctx, &requests, query); err != nil {
		return nil, fmt.Errorf("failed to list withdrawal requests: %w", err)
	}
	return requests, nil
}
