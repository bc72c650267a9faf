// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"investx-ledger/internal/domain"
	"investx-ledger/internal/repository"
	"investx-ledger/pkg/db"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	called := m.Called(ctx, dest, query, args)
	return called.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	called := m.Called(ctx, dest, query, args)
	return called.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	called := m.Called(ctx, query, args)
	return called.Get(0).(sql.Result), called.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockTxController is a mock transaction controller that also satisfies
// repository.DBExecutor, mirroring *sqlx.Tx.
type MockTxController struct {
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	called := m.Called()
	return called.Error(0)
}

func (m *MockTxController) Rollback() error {
	called := m.Called()
	return called.Error(0)
}

// newTestTxFuncs returns transaction control funcs bound to the given
// controller, with commit and rollback permitted by default.
func newTestTxFuncs(tx *MockTxController) (db.BeginTxFunc, db.CommitTxFunc, db.RollbackTxFunc) {
	tx.On("Commit").Return(nil).Maybe()
	tx.On("Rollback").Return(sql.ErrTxDone).Maybe()
	begin := func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
		return tx, nil
	}
	return begin, db.CommitTx, db.RollbackTx
}

// MockAccountRepository is a mock implementation of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	called := m.Called(ctx, q, account)
	return called.Error(0)
}

func (m *MockAccountRepository) GetAccountByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Account, error) {
	called := m.Called(ctx, q, id)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(*domain.Account), called.Error(1)
}

func (m *MockAccountRepository) GetAccountForUpdate(ctx context.Context, q repository.DBExecutor, id string) (*domain.Account, error) {
	called := m.Called(ctx, q, id)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(*domain.Account), called.Error(1)
}

func (m *MockAccountRepository) GetAccountByReferralCode(ctx context.Context, q repository.DBExecutor, code string) (*domain.Account, error) {
	called := m.Called(ctx, q, code)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(*domain.Account), called.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, q repository.DBExecutor) ([]domain.Account, error) {
	called := m.Called(ctx, q)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).([]domain.Account), called.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceDelta(ctx context.Context, q repository.DBExecutor, id string, delta decimal.Decimal) error {
	called := m.Called(ctx, q, id, delta)
	return called.Error(0)
}

func (m *MockAccountRepository) SetActive(ctx context.Context, q repository.DBExecutor, id string, active bool) error {
	called := m.Called(ctx, q, id, active)
	return called.Error(0)
}

// MockPackageRepository is a mock implementation of repository.PackageRepository.
type MockPackageRepository struct {
	mock.Mock
}

func (m *MockPackageRepository) CreatePackage(ctx context.Context, q repository.DBExecutor, pkg *domain.Package) error {
	called := m.Called(ctx, q, pkg)
	return called.Error(0)
}

func (m *MockPackageRepository) GetPackageByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Package, error) {
	called := m.Called(ctx, q, id)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(*domain.Package), called.Error(1)
}

func (m *MockPackageRepository) ListPackages(ctx context.Context, q repository.DBExecutor, activeOnly bool) ([]domain.Package, error) {
	called := m.Called(ctx, q, activeOnly)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).([]domain.Package), called.Error(1)
}

func (m *MockPackageRepository) SetActive(ctx context.Context, q repository.DBExecutor, id string, active bool) error {
	called := m.Called(ctx, q, id, active)
	return called.Error(0)
}

// MockInvestmentRepository is a mock implementation of repository.InvestmentRepository.
type MockInvestmentRepository struct {
	mock.Mock
}

func (m *MockInvestmentRepository) CreateInvestment(ctx context.Context, q repository.DBExecutor, investment *domain.Investment) error {
	called := m.Called(ctx, q, investment)
	return called.Error(0)
}

func (m *MockInvestmentRepository) CountByAccountAndPackage(ctx context.Context, q repository.DBExecutor, accountID, packageID string) (int, error) {
	called := m.Called(ctx, q, accountID, packageID)
	return called.Int(0), called.Error(1)
}

func (m *MockInvestmentRepository) ListByAccount(ctx context.Context, q repository.DBExecutor, accountID string) ([]domain.Investment, error) {
	called := m.Called(ctx, q, accountID)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).([]domain.Investment), called.Error(1)
}

// MockWithdrawalRepository is a mock implementation of repository.WithdrawalRepository.
type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) CreateRequest(ctx context.Context, q repository.DBExecutor, request *domain.WithdrawalRequest) error {
	called := m.Called(ctx, q, request)
	return called.Error(0)
}

func (m *MockWithdrawalRepository) GetRequestByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.WithdrawalRequest, error) {
	called := m.Called(ctx, q, id)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(*domain.WithdrawalRequest), called.Error(1)
}

func (m *MockWithdrawalRepository) GetRequestForUpdate(ctx context.Context, q repository.DBExecutor, id string) (*domain.WithdrawalRequest, error) {
	called := m.Called(ctx, q, id)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(*domain.WithdrawalRequest), called.Error(1)
}

func (m *MockWithdrawalRepository) MarkProcessed(ctx context.Context, q repository.DBExecutor, id string, status domain.WithdrawalStatus, processedAt time.Time, processedBy string) error {
	called := m.Called(ctx, q, id, status, processedAt, processedBy)
	return called.Error(0)
}

func (m *MockWithdrawalRepository) ListByAccount(ctx context.Context, q repository.DBExecutor, accountID string) ([]domain.WithdrawalRequest, error) {
	called := m.Called(ctx, q, accountID)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).([]domain.WithdrawalRequest), called.Error(1)
}

func (m *MockWithdrawalRepository) ListAll(ctx context.Context, q repository.DBExecutor) ([]domain.WithdrawalRequest, error) {
	called := m.Called(ctx, q)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).([]domain.WithdrawalRequest), called.Error(1)
}

// MockLedgerRepository is a mock implementation of repository.LedgerRepository.
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) CreateEntry(ctx context.Context, q repository.DBExecutor, entry *domain.LedgerEntry) error {
	called := m.Called(ctx, q, entry)
	return called.Error(0)
}

func (m *MockLedgerRepository) ListByAccount(ctx context.Context, q repository.DBExecutor, accountID string) ([]domain.LedgerEntry, error) {
	called := m.Called(ctx, q, accountID)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).([]domain.LedgerEntry), called.Error(1)
}

func (m *MockLedgerRepository) NetBalance(ctx context.Context, q repository.DBExecutor, accountID string) (decimal.Decimal, error) {
	called := m.Called(ctx, q, accountID)
	return called.Get(0).(decimal.Decimal), called.Error(1)
}

// MockWalletLedger is a mock implementation of WalletLedger.
type MockWalletLedger struct {
	mock.Mock
}

func (m *MockWalletLedger) Debit(ctx context.Context, accountID string, amount decimal.Decimal, reason string) (*domain.Account, error) {
	called := m.Called(ctx, accountID, amount, reason)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(*domain.Account), called.Error(1)
}

func (m *MockWalletLedger) Credit(ctx context.Context, accountID string, amount decimal.Decimal, reason string) (*domain.Account, error) {
	called := m.Called(ctx, accountID, amount, reason)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(*domain.Account), called.Error(1)
}

func (m *MockWalletLedger) DebitTx(ctx context.Context, q repository.DBExecutor, accountID string, amount decimal.Decimal, reason string) (*domain.Account, error) {
	called := m.Called(ctx, q, accountID, amount, reason)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(*domain.Account), called.Error(1)
}

func (m *MockWalletLedger) CreditTx(ctx context.Context, q repository.DBExecutor, accountID string, amount decimal.Decimal, reason string) (*domain.Account, error) {
	called := m.Called(ctx, q, accountID, amount, reason)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(*domain.Account), called.Error(1)
}
