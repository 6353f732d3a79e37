package engine

import (
	"context"
	"log/slog"

	"github.com/corebank-ledger/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
)

// Operations is the money-movement surface exposed to the service layer
type Operations interface {
	Transfer(ctx context.Context, sourceID, destinationID uuid.UUID, amount int64, currency, description string) (*transaction.Transaction, error)
	Deposit(ctx context.Context, accountID uuid.UUID, amount int64, currency, description string) (*transaction.Transaction, error)
	Withdraw(ctx context.Context, accountID uuid.UUID, amount int64, currency, description string) (*transaction.Transaction, error)
}

var _ Operations = (*Engine)(nil)

// WorkerPoolEngine bounds the number of engine operations running against
// the database at once. Callers still block for their own result, so the
// engine's synchronous contract is unchanged; the pool only caps how many
// atomic scopes contend for connections and row locks concurrently.
type WorkerPoolEngine struct {
	base   Operations
	pool   *ants.Pool
	logger *slog.Logger
}

// WorkerPoolConfig holds worker pool configuration
type WorkerPoolConfig struct {
	Size int
}

// NewWorkerPoolEngine wraps an engine with a bounded worker pool
func NewWorkerPoolEngine(base Operations, cfg WorkerPoolConfig, logger *slog.Logger) (*WorkerPoolEngine, error) {
	pool, err := ants.NewPool(cfg.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolEngine{
		base:   base,
		pool:   pool,
		logger: logger,
	}, nil
}

type operationResult struct {
	txn *transaction.Transaction
	err error
}

// submit runs op on the pool and blocks until it finishes
func (e *WorkerPoolEngine) submit(op func() (*transaction.Transaction, error)) (*transaction.Transaction, error) {
	resultChan := make(chan operationResult, 1)

	if err := e.pool.Submit(func() {
		txn, err := op()
		resultChan <- operationResult{txn: txn, err: err}
	}); err != nil {
		e.logger.Error("Failed to submit operation to worker pool", "error", err)
		return nil, err
	}

	result := <-resultChan
	return result.txn, result.err
}

// Transfer submits a transfer to the worker pool and waits for its result
func (e *WorkerPoolEngine) Transfer(ctx context.Context, sourceID, destinationID uuid.UUID, amount int64, currency, description string) (*transaction.Transaction, error) {
	return e.submit(func() (*transaction.Transaction, error) {
		return e.base.Transfer(ctx, sourceID, destinationID, amount, currency, description)
	})
}

// Deposit submits a deposit to the worker pool and waits for its result
func (e *WorkerPoolEngine) Deposit(ctx context.Context, accountID uuid.UUID, amount int64, currency, description string) (*transaction.Transaction, error) {
	return e.submit(func() (*transaction.Transaction, error) {
		return e.base.Deposit(ctx, accountID, amount, currency, description)
	})
}

// Withdraw submits a withdrawal to the worker pool and waits for its result
func (e *WorkerPoolEngine) Withdraw(ctx context.Context, accountID uuid.UUID, amount int64, currency, description string) (*transaction.Transaction, error) {
	return e.submit(func() (*transaction.Transaction, error) {
		return e.base.Withdraw(ctx, accountID, amount, currency, description)
	})
}

// Shutdown gracefully releases the worker pool
func (e *WorkerPoolEngine) Shutdown() {
	e.logger.Info("Shutting down engine worker pool", "running_workers", e.pool.Running())
	e.pool.Release()
}

// Running returns the number of operations currently executing
func (e *WorkerPoolEngine) Running() int {
	return e.pool.Running()
}

// Capacity returns the worker pool capacity
func (e *WorkerPoolEngine) Capacity() int {
	return e.pool.Cap()
}
