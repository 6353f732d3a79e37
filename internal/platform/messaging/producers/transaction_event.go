// Package producers publishes completed-transaction events to Kafka.
// Publishing happens after the database commit and is best effort: the
// ledger is already authoritative, so a publish failure is logged by the
// caller, never propagated to the client.
package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/corebank-ledger/internal/config"
	"github.com/corebank-ledger/internal/domain/shared"
	"github.com/corebank-ledger/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// TransactionEvent is the wire message published for every completed
// transaction
type TransactionEvent struct {
	TransactionID        uuid.UUID                `json:"transaction_id"`
	Type                 shared.TransactionType   `json:"type"`
	SourceAccountID      uuid.UUID                `json:"source_account_id"`
	DestinationAccountID uuid.UUID                `json:"destination_account_id"`
	Amount               int64                    `json:"amount"` // Stored in cents/minor units
	Currency             string                   `json:"currency"`
	Status               shared.TransactionStatus `json:"status"`
	CorrelationID        string                   `json:"correlation_id,omitempty"`
	CreatedAt            time.Time                `json:"created_at"`
}

// NewTransactionEvent builds an event from a completed transaction
func NewTransactionEvent(txn *transaction.Transaction, correlationID string) *TransactionEvent {
	return &TransactionEvent{
		TransactionID:        txn.ID,
		Type:                 txn.Type,
		SourceAccountID:      txn.SourceAccountID,
		DestinationAccountID: txn.DestinationAccountID,
		Amount:               txn.Amount,
		Currency:             txn.Currency,
		Status:               txn.Status,
		CorrelationID:        correlationID,
		CreatedAt:            txn.CreatedAt,
	}
}

// TransactionEventProducer publishes transaction events to the events topic
type TransactionEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewTransactionEventProducer creates the event producer and ensures the
// topic exists
func NewTransactionEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*TransactionEventProducer, error) {
	if cfg.EventsTopic == "" {
		return nil, fmt.Errorf("kafka events topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for event producer: %w", err)
	}
	defer conn.Close()

	if err := createKafkaTopicIfNotExists(conn, cfg.EventsTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure events topic %s exists: %w", cfg.EventsTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.EventsTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Events are best effort, never block the request path
		WriteTimeout: cfg.WriteTimeout,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write messages asynchronously", "topic", cfg.EventsTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote messages asynchronously", "topic", cfg.EventsTopic, "count", len(messages))
			}
		},
	}

	return &TransactionEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.EventsTopic,
	}, nil
}

// Publish sends one event keyed by transaction id
func (p *TransactionEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish transaction event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish transaction event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published transaction event",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

// Close shuts down the underlying writer
func (p *TransactionEventProducer) Close() error {
	p.logger.Info("Closing transaction event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
