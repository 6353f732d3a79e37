package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corebank-ledger/internal/domain/account"
	"github.com/corebank-ledger/internal/domain/ledger"
	"github.com/corebank-ledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementations of the repositories

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, acc *account.Account) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) LockAllForUpdate(ctx context.Context, ids ...uuid.UUID) ([]*account.Account, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountRepository) WithTx(tx pgx.Tx) account.Repository {
	return m
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Append(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) SumByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]*ledger.Entry, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) ListByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]*ledger.Entry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) WithTx(tx pgx.Tx) ledger.Repository {
	return m
}

func TestAccountService_CreateAccount(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		ledgerRepo := new(MockLedgerRepository)
		accountRepo.On("Create", mock.Anything, mock.MatchedBy(func(acc *account.Account) bool {
			return acc.UserID == userID && acc.Status == shared.AccountStatusActive
		})).Return(nil).Once()

		svc := NewAccountService(accountRepo, ledgerRepo)
		acc, err := svc.CreateAccount(ctx, userID, "checking", "USD")
		require.NoError(t, err)
		assert.Equal(t, "checking", acc.AccountType)
		assert.Equal(t, "USD", acc.Currency)
		accountRepo.AssertExpectations(t)
	})

	t.Run("invalid currency", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		ledgerRepo := new(MockLedgerRepository)

		svc := NewAccountService(accountRepo, ledgerRepo)
		acc, err := svc.CreateAccount(ctx, userID, "checking", "DOLLARS")
		assert.Nil(t, acc)
		assert.ErrorIs(t, err, account.ErrInvalidCurrencyFormat)
		accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		storeErr := errors.New("insert failed")
		accountRepo := new(MockAccountRepository)
		ledgerRepo := new(MockLedgerRepository)
		accountRepo.On("Create", mock.Anything, mock.Anything).Return(storeErr).Once()

		svc := NewAccountService(accountRepo, ledgerRepo)
		acc, err := svc.CreateAccount(ctx, userID, "checking", "USD")
		assert.Nil(t, acc)
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestAccountService_GetAccountWithBalance(t *testing.T) {
	ctx := context.Background()
	accID := uuid.New()
	now := time.Now()
	acc := &account.Account{
		ID:          accID,
		UserID:      uuid.New(),
		AccountType: "checking",
		Currency:    "USD",
		Status:      shared.AccountStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	t.Run("success", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		ledgerRepo := new(MockLedgerRepository)
		accountRepo.On("GetByID", mock.Anything, accID).Return(acc, nil).Once()
		ledgerRepo.On("SumByAccountID", mock.Anything, accID).Return(int64(4200), nil).Once()

		svc := NewAccountService(accountRepo, ledgerRepo)
		got, balance, err := svc.GetAccountWithBalance(ctx, accID)
		require.NoError(t, err)
		assert.Equal(t, acc, got)
		assert.Equal(t, int64(4200), balance)
	})

	t.Run("account not found", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		ledgerRepo := new(MockLedgerRepository)
		accountRepo.On("GetByID", mock.Anything, accID).
			Return(nil, account.ErrAccountNotFound{AccountID: accID}).Once()

		svc := NewAccountService(accountRepo, ledgerRepo)
		got, balance, err := svc.GetAccountWithBalance(ctx, accID)
		assert.Nil(t, got)
		assert.Zero(t, balance)
		assert.ErrorIs(t, err, account.ErrAccountNotFound{})
		ledgerRepo.AssertNotCalled(t, "SumByAccountID", mock.Anything, mock.Anything)
	})

	t.Run("balance read failure", func(t *testing.T) {
		sumErr := errors.New("sum failed")
		accountRepo := new(MockAccountRepository)
		ledgerRepo := new(MockLedgerRepository)
		accountRepo.On("GetByID", mock.Anything, accID).Return(acc, nil).Once()
		ledgerRepo.On("SumByAccountID", mock.Anything, accID).Return(int64(0), sumErr).Once()

		svc := NewAccountService(accountRepo, ledgerRepo)
		got, _, err := svc.GetAccountWithBalance(ctx, accID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, sumErr)
	})
}

func TestAccountService_GetAccountLedger(t *testing.T) {
	ctx := context.Background()
	accID := uuid.New()
	now := time.Now()
	acc := &account.Account{ID: accID, Status: shared.AccountStatusActive, Currency: "USD", CreatedAt: now, UpdatedAt: now}

	t.Run("success", func(t *testing.T) {
		entries := []*ledger.Entry{
			{ID: uuid.New(), AccountID: accID, TransactionID: uuid.New(), Type: shared.EntryTypeCredit, Amount: 100, CreatedAt: now},
		}
		accountRepo := new(MockAccountRepository)
		ledgerRepo := new(MockLedgerRepository)
		accountRepo.On("GetByID", mock.Anything, accID).Return(acc, nil).Once()
		ledgerRepo.On("ListByAccountID", mock.Anything, accID).Return(entries, nil).Once()

		svc := NewAccountService(accountRepo, ledgerRepo)
		got, err := svc.GetAccountLedger(ctx, accID)
		require.NoError(t, err)
		assert.Equal(t, entries, got)
	})

	t.Run("account not found", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		ledgerRepo := new(MockLedgerRepository)
		accountRepo.On("GetByID", mock.Anything, accID).
			Return(nil, account.ErrAccountNotFound{AccountID: accID}).Once()

		svc := NewAccountService(accountRepo, ledgerRepo)
		got, err := svc.GetAccountLedger(ctx, accID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, account.ErrAccountNotFound{})
		ledgerRepo.AssertNotCalled(t, "ListByAccountID", mock.Anything, mock.Anything)
	})
}
