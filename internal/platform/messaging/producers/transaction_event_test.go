package producers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/corebank-ledger/internal/domain/shared"
	"github.com/corebank-ledger/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockKafkaWriter mocks KafkaWriter interface
type MockKafkaWriter struct {
	mock.Mock
}

func (m *MockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockKafkaWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestNewTransactionEvent(t *testing.T) {
	txn := &transaction.Transaction{
		ID:                   uuid.New(),
		Type:                 shared.TransactionTypeDeposit,
		SourceAccountID:      uuid.New(),
		DestinationAccountID: uuid.New(),
		Amount:               900,
		Currency:             "USD",
		Status:               shared.TransactionStatusCompleted,
		CreatedAt:            time.Now(),
	}

	event := NewTransactionEvent(txn, "corr-42")

	assert.Equal(t, txn.ID, event.TransactionID)
	assert.Equal(t, txn.Type, event.Type)
	assert.Equal(t, txn.SourceAccountID, event.SourceAccountID)
	assert.Equal(t, txn.DestinationAccountID, event.DestinationAccountID)
	assert.Equal(t, txn.Amount, event.Amount)
	assert.Equal(t, shared.TransactionStatusCompleted, event.Status)
	assert.Equal(t, "corr-42", event.CorrelationID)
}

func TestTransactionEventProducer_Publish(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	topic := "transaction_events"
	ctx := context.Background()

	t.Run("SuccessfulPublish", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &TransactionEventProducer{
			logger: logger,
			writer: mockWriter,
			topic:  topic,
		}

		txnID := uuid.New()
		event := &TransactionEvent{
			TransactionID: txnID,
			Type:          shared.TransactionTypeTransfer,
			Amount:        100,
			Currency:      "USD",
			Status:        shared.TransactionStatusCompleted,
		}
		expectedJSONValue, _ := json.Marshal(event)

		mockWriter.On("WriteMessages", ctx, mock.MatchedBy(func(msgs []kafka.Message) bool {
			if len(msgs) != 1 {
				return false
			}
			msg := msgs[0]
			return string(msg.Key) == txnID.String() && string(msg.Value) == string(expectedJSONValue)
		})).Return(nil).Once()

		err := producer.Publish(ctx, txnID.String(), event)
		require.NoError(t, err)
		mockWriter.AssertExpectations(t)
	})

	t.Run("PublishReturnsErrorOnWriterError", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &TransactionEventProducer{
			logger: logger,
			writer: mockWriter,
			topic:  topic,
		}

		writerError := errors.New("kafka write error")
		mockWriter.On("WriteMessages", ctx, mock.AnythingOfType("[]kafka.Message")).Return(writerError).Once()

		err := producer.Publish(ctx, "key", map[string]string{"data": "x"})
		require.Error(t, err)
		assert.ErrorIs(t, err, writerError)
		mockWriter.AssertExpectations(t)
	})

	t.Run("PublishReturnsErrorOnMarshalFailure", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &TransactionEventProducer{
			logger: logger,
			writer: mockWriter,
			topic:  topic,
		}

		err := producer.Publish(ctx, "key", make(chan int)) // Unmarshalable value
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to marshal transaction event")
		mockWriter.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
	})
}

func TestTransactionEventProducer_Close(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("Success", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		mockWriter.On("Close").Return(nil).Once()

		producer := &TransactionEventProducer{logger: logger, writer: mockWriter, topic: "transaction_events"}
		assert.NoError(t, producer.Close())
		mockWriter.AssertExpectations(t)
	})

	t.Run("WriterCloseError", func(t *testing.T) {
		closeErr := errors.New("close failed")
		mockWriter := new(MockKafkaWriter)
		mockWriter.On("Close").Return(closeErr).Once()

		producer := &TransactionEventProducer{logger: logger, writer: mockWriter, topic: "transaction_events"}
		err := producer.Close()
		require.Error(t, err)
		assert.ErrorIs(t, err, closeErr)
	})
}
