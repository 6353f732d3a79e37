package account

import (
	"errors"
	"time"

	"github.com/corebank-ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrEmptyUserID           = errors.New("user id cannot be empty")
	ErrEmptyAccountType      = errors.New("account type cannot be empty")
	ErrInvalidCurrencyFormat = errors.New("currency must be a 3-letter code")
)

// Account represents a ledger account. It carries no balance column: the
// balance is derived from the account's ledger entries. The transaction
// engine only ever locks and reads accounts, it never mutates them.
type Account struct {
	ID          uuid.UUID            `json:"id"`
	UserID      uuid.UUID            `json:"user_id"`
	AccountType string               `json:"account_type"`
	Currency    string               `json:"currency"`
	Status      shared.AccountStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// NewAccount creates a new active account with the given parameters
func NewAccount(userID uuid.UUID, accountType string, currency string) (*Account, error) {
	if userID == uuid.Nil {
		return nil, ErrEmptyUserID
	}
	if accountType == "" {
		return nil, ErrEmptyAccountType
	}
	if len(currency) != 3 { // Basic validation for currency code length
		return nil, ErrInvalidCurrencyFormat
	}

	now := time.Now()
	return &Account{
		ID:          uuid.New(),
		UserID:      userID,
		AccountType: accountType,
		Currency:    currency,
		Status:      shared.AccountStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsActive reports whether the account may participate in money movements
func (a *Account) IsActive() bool {
	return a.Status == shared.AccountStatusActive
}
