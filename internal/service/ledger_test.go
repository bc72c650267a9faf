// internal/service/ledger_test.go
package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"investx-ledger/internal/domain"
	"investx-ledger/internal/util"
)

func newTestWalletLedger(accountRepo *MockAccountRepository, ledgerRepo *MockLedgerRepository, tx *MockTxController) WalletLedger {
	begin, commit, rollback := newTestTxFuncs(tx)
	return NewWalletLedger(nil, accountRepo, ledgerRepo, begin, commit, rollback)
}

func TestWalletLedger_Debit_Success(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	ledgerRepo := new(MockLedgerRepository)
	tx := new(MockTxController)
	ledger := newTestWalletLedger(accountRepo, ledgerRepo, tx)

	accountID := "acc-1"
	amount := decimal.NewFromInt(5000)
	account := &domain.Account{ID: accountID, WalletBalance: decimal.NewFromInt(12000)}

	accountRepo.On("GetAccountForUpdate", mock.Anything, mock.Anything, accountID).Return(account, nil).Once()
	accountRepo.On("ApplyBalanceDelta", mock.Anything, mock.Anything, accountID, amount.Neg()).Return(nil).Once()
	ledgerRepo.On("CreateEntry", mock.Anything, mock.Anything, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
		return e.AccountID == accountID &&
			e.Direction == domain.LedgerDirectionDebit &&
			e.Amount.Equal(amount) &&
			e.Reason == domain.LedgerReasonPurchase
	})).Return(nil).Once()

	updated, err := ledger.Debit(context.Background(), accountID, amount, domain.LedgerReasonPurchase)

	assert.NoError(t, err)
	assert.True(t, updated.WalletBalance.Equal(decimal.NewFromInt(7000)))
	accountRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
}

func TestWalletLedger_Debit_InsufficientFunds(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	ledgerRepo := new(MockLedgerRepository)
	tx := new(MockTxController)
	ledger := newTestWalletLedger(accountRepo, ledgerRepo, tx)

	account := &domain.Account{ID: "acc-1", WalletBalance: decimal.NewFromInt(100)}
	accountRepo.On("GetAccountForUpdate", mock.Anything, mock.Anything, "acc-1").Return(account, nil).Once()

	_, err := ledger.Debit(context.Background(), "acc-1", decimal.NewFromInt(5000), domain.LedgerReasonPurchase)

	assert.True(t, util.IsError(err, util.ErrInsufficientFunds))
	accountRepo.AssertNotCalled(t, "ApplyBalanceDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	ledgerRepo.AssertNotCalled(t, "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func TestWalletLedger_Debit_ExactBalance(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	ledgerRepo := new(MockLedgerRepository)
	tx := new(MockTxController)
	ledger := newTestWalletLedger(accountRepo, ledgerRepo, tx)

	amount := decimal.NewFromInt(100)
	account := &domain.Account{ID: "acc-1", WalletBalance: decimal.NewFromInt(100)}
	accountRepo.On("GetAccountForUpdate", mock.Anything, mock.Anything, "acc-1").Return(account, nil).Once()
	accountRepo.On("ApplyBalanceDelta", mock.Anything, mock.Anything, "acc-1", amount.Neg()).Return(nil).Once()
	ledgerRepo.On("CreateEntry", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	updated, err := ledger.Debit(context.Background(), "acc-1", amount, domain.LedgerReasonWithdrawal)

	assert.NoError(t, err)
	assert.True(t, updated.WalletBalance.IsZero())
}

func TestWalletLedger_Debit_NonPositiveAmount(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	ledgerRepo := new(MockLedgerRepository)
	tx := new(MockTxController)
	ledger := newTestWalletLedger(accountRepo, ledgerRepo, tx)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-50)} {
		_, err := ledger.Debit(context.Background(), "acc-1", amount, domain.LedgerReasonPurchase)
		assert.True(t, util.IsError(err, util.ErrInvalidAmount))
	}
	accountRepo.AssertNotCalled(t, "GetAccountForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func TestWalletLedger_Debit_AccountNotFound(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	ledgerRepo := new(MockLedgerRepository)
	tx := new(MockTxController)
	ledger := newTestWalletLedger(accountRepo, ledgerRepo, tx)

	accountRepo.On("GetAccountForUpdate", mock.Anything, mock.Anything, "missing").Return(nil, util.ErrNotFound).Once()

	_, err := ledger.Debit(context.Background(), "missing", decimal.NewFromInt(100), domain.LedgerReasonPurchase)

	assert.True(t, util.IsError(err, util.ErrNotFound))
}

func TestWalletLedger_Credit_Success(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	ledgerRepo := new(MockLedgerRepository)
	tx := new(MockTxController)
	ledger := newTestWalletLedger(accountRepo, ledgerRepo, tx)

	amount := decimal.NewFromInt(10000)
	account := &domain.Account{ID: "acc-1", WalletBalance: decimal.NewFromInt(500)}
	accountRepo.On("GetAccountForUpdate", mock.Anything, mock.Anything, "acc-1").Return(account, nil).Once()
	accountRepo.On("ApplyBalanceDelta", mock.Anything, mock.Anything, "acc-1", amount).Return(nil).Once()
	ledgerRepo.On("CreateEntry", mock.Anything, mock.Anything, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
		return e.Direction == domain.LedgerDirectionCredit && e.Amount.Equal(amount)
	})).Return(nil).Once()

	updated, err := ledger.Credit(context.Background(), "acc-1", amount, domain.LedgerReasonAdminAdjust)

	assert.NoError(t, err)
	assert.True(t, updated.WalletBalance.Equal(decimal.NewFromInt(10500)))
	ledgerRepo.AssertExpectations(t)
}

func TestWalletLedger_Credit_Overflow(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	ledgerRepo := new(MockLedgerRepository)
	tx := new(MockTxController)
	ledger := newTestWalletLedger(accountRepo, ledgerRepo, tx)

	account := &domain.Account{ID: "acc-1", WalletBalance: maxWalletBalance}
	accountRepo.On("GetAccountForUpdate", mock.Anything, mock.Anything, "acc-1").Return(account, nil).Once()

	_, err := ledger.Credit(context.Background(), "acc-1", decimal.NewFromInt(1), domain.LedgerReasonAdminAdjust)

	assert.True(t, util.IsError(err, util.ErrInvalidAmount))
	accountRepo.AssertNotCalled(t, "ApplyBalanceDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWalletLedger_Debit_RetriesExhaustedOnConflict(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	ledgerRepo := new(MockLedgerRepository)
	tx := new(MockTxController)
	ledger := newTestWalletLedger(accountRepo, ledgerRepo, tx)

	accountRepo.On("GetAccountForUpdate", mock.Anything, mock.Anything, "acc-1").Return(nil, util.ErrStoreConflict).Times(maxTxAttempts)

	_, err := ledger.Debit(context.Background(), "acc-1", decimal.NewFromInt(100), domain.LedgerReasonPurchase)

	assert.True(t, util.IsError(err, util.ErrStoreUnavailable))
	accountRepo.AssertExpectations(t)
}

func TestWalletLedger_Debit_NoRetryOnBusinessError(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	ledgerRepo := new(MockLedgerRepository)
	tx := new(MockTxController)
	ledger := newTestWalletLedger(accountRepo, ledgerRepo, tx)

	account := &domain.Account{ID: "acc-1", WalletBalance: decimal.NewFromInt(10)}
	accountRepo.On("GetAccountForUpdate", mock.Anything, mock.Anything, "acc-1").Return(account, nil).Once()

	_, err := ledger.Debit(context.Background(), "acc-1", decimal.NewFromInt(100), domain.LedgerReasonPurchase)

	assert.True(t, util.IsError(err, util.ErrInsufficientFunds))
	accountRepo.AssertNumberOfCalls(t, "GetAccountForUpdate", 1)
}
