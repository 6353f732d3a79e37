package history

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages archived transaction records with pagination support
type Repository interface {
	Archive(ctx context.Context, record *Record) error
	GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*Record, error)
	ListByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Record, error)
	CountByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error)
}

// ErrRecordNotFound indicates a transaction missing from the archive
type ErrRecordNotFound struct {
	TransactionID uuid.UUID
}

func (e ErrRecordNotFound) Error() string {
	return "archived transaction not found: " + e.TransactionID.String()
}

// Is matches any ErrRecordNotFound when the target carries a nil id
func (e ErrRecordNotFound) Is(target error) bool {
	t, ok := target.(ErrRecordNotFound)
	if !ok {
		return false
	}
	if t.TransactionID == uuid.Nil {
		return true
	}
	return e.TransactionID == t.TransactionID
}
