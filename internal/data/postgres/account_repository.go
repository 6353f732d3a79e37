// Package postgres provides PostgreSQL implementations of the domain
// repositories. All repositories expose WithTx so the transaction engine can
// scope every call to a single database transaction.
package postgres

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/corebank-ledger/internal/domain/account"
	"github.com/corebank-ledger/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountRepository implements the account.Repository interface for PostgreSQL
type AccountRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewAccountRepository creates a new PostgreSQL account repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewAccountRepository(logger *slog.Logger, db *persistence.PostgresDB) account.Repository {
	return &AccountRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing for atomic
// operations across multiple repository calls
func (r *AccountRepository) WithTx(tx pgx.Tx) account.Repository {
	return &AccountRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new account in the database
func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (id, user_id, account_type, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.querier.Exec(ctx, query,
		acc.ID,
		acc.UserID,
		acc.AccountType,
		acc.Currency,
		acc.Status,
		acc.CreatedAt,
		acc.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create account", "error", err)
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `
		SELECT id, user_id, account_type, currency, status, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	var acc account.Account
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&acc.ID,
		&acc.UserID,
		&acc.AccountType,
		&acc.Currency,
		&acc.Status,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound{AccountID: id}
		}
		r.logger.Error("Failed to get account", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &acc, nil
}

// LockAllForUpdate obtains pessimistic locks on the given accounts and
// returns their current state, in the same order as the (sorted) lock order.
// Ids are locked in ascending byte order so two operations referencing the
// same pair in opposite roles always contend on the same row first instead
// of deadlocking. Must be used within a transaction.
func (r *AccountRepository) LockAllForUpdate(ctx context.Context, ids ...uuid.UUID) ([]*account.Account, error) {
	ordered := make([]uuid.UUID, len(ids))
	copy(ordered, ids)
	sort.Slice(ordered, func(i, j int) bool {
		return bytes.Compare(ordered[i][:], ordered[j][:]) < 0
	})

	query := `
		SELECT id, user_id, account_type, currency, status, created_at, updated_at
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`

	accounts := make([]*account.Account, 0, len(ordered))
	for _, id := range ordered {
		var acc account.Account
		err := r.querier.QueryRow(ctx, query, id).Scan(
			&acc.ID,
			&acc.UserID,
			&acc.AccountType,
			&acc.Currency,
			&acc.Status,
			&acc.CreatedAt,
			&acc.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, account.ErrAccountNotFound{AccountID: id}
			}
			r.logger.Error("Failed to lock account for update", "id", id.String(), "error", err)
			return nil, fmt.Errorf("failed to lock account for update: %w", err)
		}
		accounts = append(accounts, &acc)
	}

	return accounts, nil
}
