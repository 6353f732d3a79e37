package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/corebank-ledger/internal/domain/shared"
	"github.com/corebank-ledger/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOperations records invocations and can simulate slow operations
type fakeOperations struct {
	delay      time.Duration
	calls      atomic.Int64
	concurrent atomic.Int64
	peak       atomic.Int64
	err        error
}

func (f *fakeOperations) exec() (*transaction.Transaction, error) {
	f.calls.Add(1)
	cur := f.concurrent.Add(1)
	for {
		peak := f.peak.Load()
		if cur <= peak || f.peak.CompareAndSwap(peak, cur) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.concurrent.Add(-1)
	if f.err != nil {
		return nil, f.err
	}
	return &transaction.Transaction{ID: uuid.New(), Status: shared.TransactionStatusCompleted}, nil
}

func (f *fakeOperations) Transfer(ctx context.Context, sourceID, destinationID uuid.UUID, amount int64, currency, description string) (*transaction.Transaction, error) {
	return f.exec()
}

func (f *fakeOperations) Deposit(ctx context.Context, accountID uuid.UUID, amount int64, currency, description string) (*transaction.Transaction, error) {
	return f.exec()
}

func (f *fakeOperations) Withdraw(ctx context.Context, accountID uuid.UUID, amount int64, currency, description string) (*transaction.Transaction, error) {
	return f.exec()
}

func TestWorkerPoolEngine_DelegatesOperations(t *testing.T) {
	ctx := context.Background()
	base := &fakeOperations{}

	pooled, err := NewWorkerPoolEngine(base, WorkerPoolConfig{Size: 4}, newTestLogger())
	require.NoError(t, err)
	defer pooled.Shutdown()

	txn, err := pooled.Transfer(ctx, uuid.New(), uuid.New(), 100, "USD", "")
	require.NoError(t, err)
	assert.Equal(t, shared.TransactionStatusCompleted, txn.Status)

	txn, err = pooled.Deposit(ctx, uuid.New(), 100, "USD", "")
	require.NoError(t, err)
	assert.NotNil(t, txn)

	txn, err = pooled.Withdraw(ctx, uuid.New(), 100, "USD", "")
	require.NoError(t, err)
	assert.NotNil(t, txn)

	assert.Equal(t, int64(3), base.calls.Load())
}

func TestWorkerPoolEngine_PropagatesErrors(t *testing.T) {
	ctx := context.Background()
	base := &fakeOperations{err: shared.NewError(shared.KindInsufficientFunds, "account holds 0")}

	pooled, err := NewWorkerPoolEngine(base, WorkerPoolConfig{Size: 2}, newTestLogger())
	require.NoError(t, err)
	defer pooled.Shutdown()

	txn, err := pooled.Withdraw(ctx, uuid.New(), 100, "USD", "")
	assert.Nil(t, txn)
	assert.True(t, shared.IsKind(err, shared.KindInsufficientFunds))
}

func TestWorkerPoolEngine_BoundsConcurrency(t *testing.T) {
	ctx := context.Background()
	base := &fakeOperations{delay: 20 * time.Millisecond}

	pooled, err := NewWorkerPoolEngine(base, WorkerPoolConfig{Size: 2}, newTestLogger())
	require.NoError(t, err)
	defer pooled.Shutdown()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = pooled.Deposit(ctx, uuid.New(), 100, "USD", "")
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(10), base.calls.Load(), "every submitted operation runs")
	assert.LessOrEqual(t, base.peak.Load(), int64(2), "no more than pool size run at once")
	assert.Equal(t, 2, pooled.Capacity())
}
