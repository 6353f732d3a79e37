package service

import (
	"context"

	"github.com/corebank-ledger/internal/domain/account"
	"github.com/corebank-ledger/internal/domain/history"
	"github.com/corebank-ledger/internal/domain/ledger"
	"github.com/corebank-ledger/internal/domain/transaction"
	"github.com/google/uuid"
)

// AccountService defines the interface for account operations
type AccountService interface {
	// CreateAccount creates a new active account for a user
	CreateAccount(ctx context.Context, userID uuid.UUID, accountType string, currency string) (*account.Account, error)

	// GetAccountWithBalance retrieves an account and its current balance.
	// Returns ErrAccountNotFound if the account doesn't exist.
	GetAccountWithBalance(ctx context.Context, id uuid.UUID) (*account.Account, int64, error)

	// GetAccountLedger retrieves the account's ledger entries, oldest first.
	// Returns ErrAccountNotFound if the account doesn't exist.
	GetAccountLedger(ctx context.Context, id uuid.UUID) ([]*ledger.Entry, error)
}

// TransactionService defines the interface for money-movement operations.
// Failures carry a shared.Error kind for the handler layer to map to HTTP.
type TransactionService interface {
	// Transfer moves amount between two ordinary accounts
	Transfer(ctx context.Context, correlationID string, sourceID, destinationID uuid.UUID, amount int64, currency, description string) (*transaction.Transaction, error)

	// Deposit credits an account from the system account
	Deposit(ctx context.Context, correlationID string, accountID uuid.UUID, amount int64, currency, description string) (*transaction.Transaction, error)

	// Withdraw debits an account towards the system account
	Withdraw(ctx context.Context, correlationID string, accountID uuid.UUID, amount int64, currency, description string) (*transaction.Transaction, error)

	// GetTransactionByID retrieves a transaction by its ID.
	// Returns nil if the transaction is not found.
	GetTransactionByID(ctx context.Context, transactionID uuid.UUID) (*transaction.Transaction, error)

	// GetHistoryByAccountID retrieves a paginated list of archived
	// transactions touching an account, newest first.
	// Returns records, total count, and any error.
	GetHistoryByAccountID(ctx context.Context, accountID uuid.UUID, page, perPage int) ([]*history.Record, int64, error)
}
