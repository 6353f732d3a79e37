package ledger

import (
	"errors"
	"time"

	"github.com/corebank-ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidAmount    = errors.New("entry amount must be positive")
	ErrInvalidEntryType = errors.New("entry type must be debit or credit")
)

// Entry is one side of a double-entry posting. Entries are immutable and
// append-only; every completed transaction owns exactly one debit and one
// credit entry of equal amount on two different accounts.
type Entry struct {
	ID            uuid.UUID        `json:"id"`
	AccountID     uuid.UUID        `json:"account_id"`
	TransactionID uuid.UUID        `json:"transaction_id"`
	Type          shared.EntryType `json:"entry_type"`
	Amount        int64            `json:"amount"` // Always positive, in cents/minor units
	CreatedAt     time.Time        `json:"created_at"`
}

// NewEntry creates a ledger entry for one side of a posting
func NewEntry(accountID, transactionID uuid.UUID, entryType shared.EntryType, amount int64) (*Entry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if entryType != shared.EntryTypeDebit && entryType != shared.EntryTypeCredit {
		return nil, ErrInvalidEntryType
	}

	return &Entry{
		ID:            uuid.New(),
		AccountID:     accountID,
		TransactionID: transactionID,
		Type:          entryType,
		Amount:        amount,
		CreatedAt:     time.Now(),
	}, nil
}
