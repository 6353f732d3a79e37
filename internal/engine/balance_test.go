package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBalanceCalculator_Balance(t *testing.T) {
	ctx := context.Background()
	accID := uuid.New()

	t.Run("returns the signed sum", func(t *testing.T) {
		entries := new(MockLedgerRepository)
		entries.On("SumByAccountID", mock.Anything, accID).Return(int64(1250), nil)

		calc := NewBalanceCalculator(entries)
		balance, err := calc.Balance(ctx, accID)
		require.NoError(t, err)
		assert.Equal(t, int64(1250), balance)
	})

	t.Run("zero for an account with no entries", func(t *testing.T) {
		entries := new(MockLedgerRepository)
		entries.On("SumByAccountID", mock.Anything, accID).Return(int64(0), nil)

		calc := NewBalanceCalculator(entries)
		balance, err := calc.Balance(ctx, accID)
		require.NoError(t, err)
		assert.Zero(t, balance)
	})

	t.Run("negative balances are representable", func(t *testing.T) {
		// The system account funds deposits without a balance check, so its
		// sum legitimately goes below zero.
		entries := new(MockLedgerRepository)
		entries.On("SumByAccountID", mock.Anything, accID).Return(int64(-5000), nil)

		calc := NewBalanceCalculator(entries)
		balance, err := calc.Balance(ctx, accID)
		require.NoError(t, err)
		assert.Equal(t, int64(-5000), balance)
	})

	t.Run("store failure", func(t *testing.T) {
		storeErr := errors.New("query timeout")
		entries := new(MockLedgerRepository)
		entries.On("SumByAccountID", mock.Anything, accID).Return(int64(0), storeErr)

		calc := NewBalanceCalculator(entries)
		balance, err := calc.Balance(ctx, accID)
		assert.Zero(t, balance)
		assert.ErrorIs(t, err, storeErr)
		assert.Contains(t, err.Error(), "failed to compute balance")
	})
}
