package service

import (
	"context"

	"github.com/corebank-ledger/internal/domain/account"
	"github.com/corebank-ledger/internal/domain/ledger"
	"github.com/corebank-ledger/internal/engine"
	"github.com/google/uuid"
)

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	accountRepo account.Repository
	ledgerRepo  ledger.Repository
	balances    *engine.BalanceCalculator
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo account.Repository, ledgerRepo ledger.Repository) AccountService {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		balances:    engine.NewBalanceCalculator(ledgerRepo),
	}
}

// CreateAccount creates a new active account for a user
func (s *AccountServiceImpl) CreateAccount(ctx context.Context, userID uuid.UUID, accountType string, currency string) (*account.Account, error) {
	acc, err := account.NewAccount(userID, accountType, currency)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Create(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

// GetAccountWithBalance retrieves an account together with its derived
// balance. The two reads are not atomic; a movement committed between them
// shows up on the next read, which is fine for a presentation endpoint.
func (s *AccountServiceImpl) GetAccountWithBalance(ctx context.Context, id uuid.UUID) (*account.Account, int64, error) {
	acc, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	balance, err := s.balances.Balance(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	return acc, balance, nil
}

// GetAccountLedger retrieves the account's ledger entries, oldest first
func (s *AccountServiceImpl) GetAccountLedger(ctx context.Context, id uuid.UUID) ([]*ledger.Entry, error) {
	if _, err := s.accountRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	return s.ledgerRepo.ListByAccountID(ctx, id)
}
