// internal/service/withdrawal.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"investx-ledger/internal/domain"
	"investx-ledger/internal/repository"
	"investx-ledger/internal/util"
	"investx-ledger/pkg/db"
)

// WithdrawalService validates withdrawal requests, computes the fee, and
// drives each request through its state machine:
//
//	pending --approve--> approved (terminal)
//	pending --reject---> rejected (terminal)
//
// The requested amount is debited immediately at request time; rejection
// issues the compensating credit.
type WithdrawalService interface {
	Request(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.WithdrawalRequest, error)
	// Approve marks a pending request approved. No fund movement occurs; the
	// funds were reserved at request time. Retrying an approved request
	// returns the stored terminal result.
	Approve(ctx context.Context, requestID, adminID string) (*domain.WithdrawalRequest, error)
	// Reject marks a pending request rejected and returns the reserved funds.
	// Retrying a rejected request returns the stored terminal result without
	// crediting twice.
	Reject(ctx context.Context, requestID, adminID string) (*domain.WithdrawalRequest, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.WithdrawalRequest, error)
	ListAll(ctx context.Context) ([]domain.WithdrawalRequest, error)
}

type withdrawalService struct {
	txRunner
	dbExecutor     repository.DBExecutor
	withdrawalRepo repository.WithdrawalRepository
	ledger         WalletLedger
	now            func() time.Time
}

// NewWithdrawalService creates a new WithdrawalService.
func NewWithdrawalService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	withdrawalRepo repository.WithdrawalRepository,
	ledger WalletLedger,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) WithdrawalService {
	return &withdrawalService{
		txRunner:       newTxRunner(dbBeginner, beginTx, commitTx, rollbackTx),
		dbExecutor:     dbExecutor,
		withdrawalRepo: withdrawalRepo,
		ledger:         ledger,
		now:            time.Now,
	}
}

// isBusinessDay reports whether t falls on the Monday-Friday withdrawal
// window of the account's operating calendar.
func isBusinessDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

func (s *withdrawalService) Request(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.WithdrawalRequest, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}
	now := s.now()
	if !isBusinessDay(now) {
		return nil, util.ErrWithdrawalWindowClosed
	}

	request := domain.NewWithdrawalRequest(accountID, amount, now)
	err := s.inTx(ctx, func(q repository.DBExecutor) error {
		// The debit reserves the funds; its row lock also closes the gap
		// between the balance check and the write, so two pending requests
		// can never overdraw the same account.
		if _, err := s.ledger.DebitTx(ctx, q, accountID, amount, domain.LedgerReasonWithdrawal); err != nil {
			return err
		}
		if err := s.withdrawalRepo.CreateRequest(ctx, q, request); err != nil {
			return fmt.Errorf("request withdrawal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (s *withdrawalService) Approve(ctx context.Context, requestID, adminID string) (*domain.WithdrawalRequest, error) {
	return s.process(ctx, requestID, adminID, domain.WithdrawalStatusApproved)
}

func (s *withdrawalService) Reject(ctx context.Context, requestID, adminID string) (*domain.WithdrawalRequest, error) {
	return s.process(ctx, requestID, adminID, domain.WithdrawalStatusRejected)
}

func (s *withdrawalService) process(ctx context.Context, requestID, adminID string, target domain.WithdrawalStatus) (*domain.WithdrawalRequest, error) {
	var request *domain.WithdrawalRequest
	err := s.inTx(ctx, func(q repository.DBExecutor) error {
		var txErr error
		request, txErr = s.withdrawalRepo.GetRequestForUpdate(ctx, q, requestID)
		if txErr != nil {
			return fmt.Errorf("process withdrawal: %w", txErr)
		}

		if request.IsTerminal() {
			// A retry of the transition that already happened is idempotent;
			// any other transition out of a terminal state is refused.
			if request.Status == target {
				return nil
			}
			return util.ErrNotPending
		}

		processedAt := s.now().UTC()
		if txErr = s.withdrawalRepo.MarkProcessed(ctx, q, requestID, target, processedAt, adminID); txErr != nil {
			return fmt.Errorf("process withdrawal: %w", txErr)
		}

		if target == domain.WithdrawalStatusRejected {
			// Return the reserved funds in the same transaction as the
			// status flip.
			if _, txErr = s.ledger.CreditTx(ctx, q, request.AccountID, request.Amount, domain.LedgerReasonWithdrawalReject); txErr != nil {
				return txErr
			}
		}

		request.Status = target
		request.ProcessedAt = &processedAt
		request.ProcessedBy = &adminID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (s *withdrawalService) ListByAccount(ctx context.Context, accountID string) ([]domain.WithdrawalRequest, error) {
	requests, err := s.withdrawalRepo.ListByAccount(ctx, s.dbExecutor, accountID)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	return requests, nil
}

func (s *withdrawalService) ListAll(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	requests, err := s.withdrawalRepo.ListAll(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	return requests, nil
}
