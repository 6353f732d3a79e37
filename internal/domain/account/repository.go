package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines account persistence operations
type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// LockAllForUpdate acquires pessimistic row locks on the given accounts
	// and returns their current state. Locks are taken in ascending id order
	// regardless of argument order, so two concurrent operations naming the
	// same pair in opposite roles cannot deadlock. Returns ErrAccountNotFound
	// for the first id that has no row. Must be called within a transaction.
	LockAllForUpdate(ctx context.Context, ids ...uuid.UUID) ([]*Account, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrAccountNotFound indicates missing account
type ErrAccountNotFound struct {
	AccountID uuid.UUID
}

func (e ErrAccountNotFound) Error() string {
	return "account not found: " + e.AccountID.String()
}

// Is matches any ErrAccountNotFound when the target carries a nil id
func (e ErrAccountNotFound) Is(target error) bool {
	t, ok := target.(ErrAccountNotFound)
	if !ok {
		return false
	}
	if t.AccountID == uuid.Nil {
		return true
	}
	return e.AccountID == t.AccountID
}
