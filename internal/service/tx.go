// internal/service/tx.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"investx-ledger/internal/repository"
	"investx-ledger/internal/util"
	"investx-ledger/pkg/db"
)

// maxTxAttempts bounds the retries for transactions that fail with a
// transient store conflict before the error is surfaced to the caller.
const maxTxAttempts = 3

// txRunner wraps business operations in a database transaction. Transaction
// control is injected so unit tests can substitute it.
type txRunner struct {
	dbBeginner db.DBTxBeginner
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
}

func newTxRunner(dbBeginner db.DBTxBeginner, beginTx db.BeginTxFunc, commitTx db.CommitTxFunc, rollbackTx db.RollbackTxFunc) txRunner {
	return txRunner{
		dbBeginner: dbBeginner,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
	}
}

// inTx runs fn inside a transaction and commits it when fn succeeds. A
// serialization or deadlock failure is retried up to maxTxAttempts times;
// after that the operation fails with ErrStoreUnavailable. Business-rule
// errors are never retried.
func (r txRunner) inTx(ctx context.Context, fn func(q repository.DBExecutor) error) error {
	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryableStoreError(err) {
			return err
		}
		lastErr = fmt.Errorf("%w: %v", util.ErrStoreConflict, err)
	}
	return fmt.Errorf("%w: retries exhausted: %v", util.ErrStoreUnavailable, lastErr)
}

func (r txRunner) runOnce(ctx context.Context, fn func(q repository.DBExecutor) error) error {
	txController, err := r.beginTx(ctx, r.dbBeginner)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer r.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("transaction controller does not implement DBExecutor")
	}

	if err := fn(txExecutor); err != nil {
		return err
	}

	if err := r.commitTx(txController); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isRetryableStoreError reports whether the error is a transient conflict
// (serialization failure or deadlock) that is safe to retry.
func isRetryableStoreError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return errors.Is(err, util.ErrStoreConflict)
}
