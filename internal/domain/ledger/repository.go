package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines append-only ledger persistence. Entries are never
// updated or deleted; the balance of an account is the signed sum of its
// entries (credits positive, debits negative).
type Repository interface {
	Append(ctx context.Context, entry *Entry) error

	// SumByAccountID returns the signed sum of the account's entries,
	// zero when none exist. Called inside the same transaction as any
	// mutation that depends on it so the read cannot race a concurrent debit.
	SumByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error)

	// ListByAccountID returns the account's entries, oldest first
	ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]*Entry, error)

	// ListByTransactionID returns the entries posted by a transaction
	ListByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]*Entry, error)

	WithTx(tx pgx.Tx) Repository
}
