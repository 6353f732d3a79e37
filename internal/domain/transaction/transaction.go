package transaction

import (
	"errors"
	"time"

	"github.com/corebank-ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrInvalidCurrencyFormat = errors.New("currency must be a 3-letter code")
	ErrSameAccount           = errors.New("source and destination accounts must differ")
)

// Transaction represents a money movement between two accounts. It is
// immutable once created except for the single pending -> completed status
// transition performed inside the same atomic scope as its ledger entries.
type Transaction struct {
	ID                   uuid.UUID                `json:"id"`
	Type                 shared.TransactionType   `json:"type"`
	SourceAccountID      uuid.UUID                `json:"source_account_id"`
	DestinationAccountID uuid.UUID                `json:"destination_account_id"`
	Amount               int64                    `json:"amount"` // Stored in cents/minor units
	Currency             string                   `json:"currency"`
	Status               shared.TransactionStatus `json:"status"`
	Description          string                   `json:"description,omitempty"`
	CreatedAt            time.Time                `json:"created_at"`
}

// NewTransaction creates a pending transaction from the debited account to
// the credited account
func NewTransaction(txType shared.TransactionType, sourceID, destinationID uuid.UUID, amount int64, currency, description string) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if len(currency) != 3 {
		return nil, ErrInvalidCurrencyFormat
	}
	if sourceID == destinationID {
		return nil, ErrSameAccount
	}

	return &Transaction{
		ID:                   uuid.New(),
		Type:                 txType,
		SourceAccountID:      sourceID,
		DestinationAccountID: destinationID,
		Amount:               amount,
		Currency:             currency,
		Status:               shared.TransactionStatusPending,
		Description:          description,
		CreatedAt:            time.Now(),
	}, nil
}
