// Package history defines the transaction history archive: a denormalized,
// post-commit read model of completed transactions. The PostgreSQL ledger
// remains authoritative; the archive only serves per-account history queries.
package history

import (
	"time"

	"github.com/corebank-ledger/internal/domain/shared"
	"github.com/corebank-ledger/internal/domain/transaction"
	"github.com/google/uuid"
)

// Record is an archived completed transaction. AccountIDs carries both sides
// of the movement so one indexed field answers per-account queries.
type Record struct {
	TransactionID        uuid.UUID                `json:"transaction_id" bson:"transaction_id"`
	Type                 shared.TransactionType   `json:"type" bson:"type"`
	SourceAccountID      uuid.UUID                `json:"source_account_id" bson:"source_account_id"`
	DestinationAccountID uuid.UUID                `json:"destination_account_id" bson:"destination_account_id"`
	AccountIDs           []uuid.UUID              `json:"account_ids" bson:"account_ids"`
	Amount               int64                    `json:"amount" bson:"amount"` // Stored in cents/minor units
	Currency             string                   `json:"currency" bson:"currency"`
	Status               shared.TransactionStatus `json:"status" bson:"status"`
	Description          string                   `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt            time.Time                `json:"created_at" bson:"created_at"`
	ArchivedAt           time.Time                `json:"archived_at" bson:"archived_at"`
}

// NewRecord builds an archive record from a completed transaction
func NewRecord(txn *transaction.Transaction) *Record {
	return &Record{
		TransactionID:        txn.ID,
		Type:                 txn.Type,
		SourceAccountID:      txn.SourceAccountID,
		DestinationAccountID: txn.DestinationAccountID,
		AccountIDs:           []uuid.UUID{txn.SourceAccountID, txn.DestinationAccountID},
		Amount:               txn.Amount,
		Currency:             txn.Currency,
		Status:               txn.Status,
		Description:          txn.Description,
		CreatedAt:            txn.CreatedAt,
		ArchivedAt:           time.Now(),
	}
}
