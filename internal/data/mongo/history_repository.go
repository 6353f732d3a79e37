// Package mongo provides the MongoDB implementation of the transaction
// history archive. Records are written best-effort after commit; the
// PostgreSQL ledger stays the source of truth.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/corebank-ledger/internal/domain/history"
	"github.com/google/uuid"
)

const (
	// HistoryCollectionName is the name of the archive collection in MongoDB
	HistoryCollectionName = "transaction_history"
)

// HistoryRepository implements the history.Repository interface for MongoDB
type HistoryRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewHistoryRepository creates a new MongoDB history repository
func NewHistoryRepository(logger *slog.Logger, db *mongo.Database) history.Repository {
	return &HistoryRepository{
		db:     db,
		logger: logger,
	}
}

// Archive stores a completed transaction record. Re-archiving the same
// transaction id is treated as success so a post-commit retry cannot fail.
func (r *HistoryRepository) Archive(ctx context.Context, record *history.Record) error {
	collection := r.db.Collection(HistoryCollectionName)

	existing, err := r.GetByTransactionID(ctx, record.TransactionID)
	if err != nil && !errors.Is(err, history.ErrRecordNotFound{}) {
		r.logger.Error("Failed to check for existing archive record",
			"transaction_id", record.TransactionID.String(),
			"error", err)
		return fmt.Errorf("failed to check for existing archive record: %w", err)
	}
	if existing != nil {
		return nil
	}

	if _, err := collection.InsertOne(ctx, record); err != nil {
		r.logger.Error("Failed to archive transaction",
			"transaction_id", record.TransactionID.String(),
			"error", err)
		return fmt.Errorf("failed to archive transaction: %w", err)
	}

	return nil
}

// GetByTransactionID retrieves an archived transaction by its id.
// Returns ErrRecordNotFound if no record exists.
func (r *HistoryRepository) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*history.Record, error) {
	collection := r.db.Collection(HistoryCollectionName)

	filter := bson.M{"transaction_id": transactionID}
	var record history.Record
	err := collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, history.ErrRecordNotFound{TransactionID: transactionID}
		}
		r.logger.Error("Failed to get archived transaction",
			"transaction_id", transactionID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get archived transaction: %w", err)
	}

	return &record, nil
}

// ListByAccountID retrieves archived transactions touching an account,
// newest first, with limit/offset pagination
func (r *HistoryRepository) ListByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*history.Record, error) {
	collection := r.db.Collection(HistoryCollectionName)

	filter := bson.M{"account_ids": accountID}
	findOptions := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		r.logger.Error("Failed to list archived transactions",
			"account_id", accountID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to list archived transactions: %w", err)
	}
	defer func() {
		if closeErr := cursor.Close(ctx); closeErr != nil {
			r.logger.Error("Failed to close cursor", "error", closeErr)
		}
	}()

	var records []*history.Record
	if err := cursor.All(ctx, &records); err != nil {
		r.logger.Error("Failed to decode archived transactions",
			"account_id", accountID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode archived transactions: %w", err)
	}

	return records, nil
}

// CountByAccountID counts archived transactions touching an account
func (r *HistoryRepository) CountByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error) {
	collection := r.db.Collection(HistoryCollectionName)

	count, err := collection.CountDocuments(ctx, bson.M{"account_ids": accountID})
	if err != nil {
		r.logger.Error("Failed to count archived transactions",
			"account_id", accountID.String(),
			"error", err)
		return 0, fmt.Errorf("failed to count archived transactions: %w", err)
	}

	return count, nil
}
