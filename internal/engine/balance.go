package engine

import (
	"context"
	"fmt"

	"github.com/corebank-ledger/internal/domain/ledger"
	"github.com/google/uuid"
)

// BalanceCalculator computes an account's current balance as the signed sum
// of its ledger entries: credits positive, debits negative, zero when the
// account has no entries. It has no side effects and is a pure function of
// the entry set visible to its repository's scope. When a mutation depends
// on the result, construct the calculator over a transaction-scoped
// repository so the read cannot race a concurrent debit.
type BalanceCalculator struct {
	entries ledger.Repository
}

// NewBalanceCalculator creates a calculator over the given ledger repository
func NewBalanceCalculator(entries ledger.Repository) *BalanceCalculator {
	return &BalanceCalculator{entries: entries}
}

// Balance returns the account's current balance
func (c *BalanceCalculator) Balance(ctx context.Context, accountID uuid.UUID) (int64, error) {
	sum, err := c.entries.SumByAccountID(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to compute balance for account %s: %w", accountID.String(), err)
	}
	return sum, nil
}
