package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/corebank-ledger/internal/domain/history"
	"github.com/corebank-ledger/internal/domain/transaction"
	"github.com/corebank-ledger/internal/engine"
	"github.com/corebank-ledger/internal/platform/messaging/producers"
	"github.com/google/uuid"
)

// TransactionServiceImpl implements the TransactionService interface. It
// delegates money movement to the engine and, after a successful commit,
// archives the transaction and publishes an event. Both post-commit steps
// are best effort: the ledger is already authoritative, so their failures
// are logged and never surfaced to the caller.
type TransactionServiceImpl struct {
	engine          engine.Operations
	transactionRepo transaction.Repository
	historyRepo     history.Repository
	producer        producers.MessagePublisher
	logger          *slog.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	logger *slog.Logger,
	eng engine.Operations,
	transactionRepo transaction.Repository,
	historyRepo history.Repository,
	producer producers.MessagePublisher,
) TransactionService {
	return &TransactionServiceImpl{
		engine:          eng,
		transactionRepo: transactionRepo,
		historyRepo:     historyRepo,
		producer:        producer,
		logger:          logger,
	}
}

// Transfer moves amount between two ordinary accounts
func (s *TransactionServiceImpl) Transfer(ctx context.Context, correlationID string, sourceID, destinationID uuid.UUID, amount int64, currency, description string) (*transaction.Transaction, error) {
	txn, err := s.engine.Transfer(ctx, sourceID, destinationID, amount, currency, description)
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, correlationID, txn)
	return txn, nil
}

// Deposit credits an account from the system account
func (s *TransactionServiceImpl) Deposit(ctx context.Context, correlationID string, accountID uuid.UUID, amount int64, currency, description string) (*transaction.Transaction, error) {
	txn, err := s.engine.Deposit(ctx, accountID, amount, currency, description)
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, correlationID, txn)
	return txn, nil
}

// Withdraw debits an account towards the system account
func (s *TransactionServiceImpl) Withdraw(ctx context.Context, correlationID string, accountID uuid.UUID, amount int64, currency, description string) (*transaction.Transaction, error) {
	txn, err := s.engine.Withdraw(ctx, accountID, amount, currency, description)
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, correlationID, txn)
	return txn, nil
}

// afterCommit archives the completed transaction and publishes its event
func (s *TransactionServiceImpl) afterCommit(ctx context.Context, correlationID string, txn *transaction.Transaction) {
	logger := s.logger
	if correlationID != "" {
		logger = s.logger.With("correlation_id", correlationID)
	}

	if s.historyRepo != nil {
		if err := s.historyRepo.Archive(ctx, history.NewRecord(txn)); err != nil {
			logger.Error("Failed to archive completed transaction",
				"transaction_id", txn.ID.String(),
				"error", err,
			)
		}
	}

	if s.producer != nil {
		event := producers.NewTransactionEvent(txn, correlationID)
		if err := s.producer.Publish(ctx, txn.ID.String(), event); err != nil {
			logger.Error("Failed to publish transaction event",
				"transaction_id", txn.ID.String(),
				"error", err,
			)
		}
	}
}

// GetTransactionByID retrieves a transaction by its ID. Returns nil if not found
func (s *TransactionServiceImpl) GetTransactionByID(ctx context.Context, transactionID uuid.UUID) (*transaction.Transaction, error) {
	txn, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound{}) {
			s.logger.Info("Transaction not found", "transaction_id", transactionID.String())
			return nil, nil
		}
		s.logger.Error("Failed to get transaction by ID", "transaction_id", transactionID.String(), "error", err)
		return nil, err
	}
	return txn, nil
}

// GetHistoryByAccountID retrieves a paginated list of archived transactions
// for an account. Returns records, total count, and any error.
func (s *TransactionServiceImpl) GetHistoryByAccountID(ctx context.Context, accountID uuid.UUID, page, perPage int) ([]*history.Record, int64, error) {
	offset := (page - 1) * perPage

	records, err := s.historyRepo.ListByAccountID(ctx, accountID, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.historyRepo.CountByAccountID(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
