package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/corebank-ledger/internal/domain/shared"
	"github.com/corebank-ledger/internal/domain/transaction"
	"github.com/corebank-ledger/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepository implements the transaction.Repository interface for PostgreSQL
type TransactionRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(logger *slog.Logger, db *persistence.PostgresDB) transaction.Repository {
	return &TransactionRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing for atomic
// operations across multiple repository calls
func (r *TransactionRepository) WithTx(tx pgx.Tx) transaction.Repository {
	return &TransactionRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new transaction record in pending status
func (r *TransactionRepository) Create(ctx context.Context, txn *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (id, tx_type, source_account_id, destination_account_id, amount, currency, status, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.querier.Exec(ctx, query,
		txn.ID,
		txn.Type,
		txn.SourceAccountID,
		txn.DestinationAccountID,
		txn.Amount,
		txn.Currency,
		txn.Status,
		txn.Description,
		txn.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create transaction", "id", txn.ID.String(), "error", err)
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// Finalize transitions a pending transaction to completed and returns the
// updated record
func (r *TransactionRepository) Finalize(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `
		UPDATE transactions
		SET status = $1
		WHERE id = $2 AND status = $3
		RETURNING id, tx_type, source_account_id, destination_account_id, amount, currency, status, description, created_at
	`

	var txn transaction.Transaction
	err := r.querier.QueryRow(ctx, query, shared.TransactionStatusCompleted, id, shared.TransactionStatusPending).Scan(
		&txn.ID,
		&txn.Type,
		&txn.SourceAccountID,
		&txn.DestinationAccountID,
		&txn.Amount,
		&txn.Currency,
		&txn.Status,
		&txn.Description,
		&txn.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrTransactionNotFound{TransactionID: id}
		}
		r.logger.Error("Failed to finalize transaction", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to finalize transaction: %w", err)
	}

	return &txn, nil
}

// GetByID retrieves a transaction by its ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `
		SELECT id, tx_type, source_account_id, destination_account_id, amount, currency, status, description, created_at
		FROM transactions
		WHERE id = $1
	`

	var txn transaction.Transaction
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&txn.ID,
		&txn.Type,
		&txn.SourceAccountID,
		&txn.DestinationAccountID,
		&txn.Amount,
		&txn.Currency,
		&txn.Status,
		&txn.Description,
		&txn.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrTransactionNotFound{TransactionID: id}
		}
		r.logger.Error("Failed to get transaction", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return &txn, nil
}
