// Package engine implements the transaction engine: the only component that
// moves money. Every operation runs inside one atomic database scope:
// ordered row locks, validation, balance check, pending transaction record,
// paired debit/credit ledger entries, finalization. Any failure aborts the
// whole scope, so no partial state is ever observable.
package engine

import (
	"context"
	"errors"
	"log/slog"

	"github.com/corebank-ledger/internal/domain/account"
	"github.com/corebank-ledger/internal/domain/ledger"
	"github.com/corebank-ledger/internal/domain/shared"
	"github.com/corebank-ledger/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AtomicRunner executes a function inside one database transaction with
// exactly one commit or one rollback on every path, including panics.
// Satisfied by persistence.PostgresDB.
type AtomicRunner interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// Engine orchestrates transfers, deposits and withdrawals. The system
// (counterparty) account id is injected configuration, validated once at
// construction; accounts are only locked and read, never updated here.
type Engine struct {
	db            AtomicRunner
	accounts      account.Repository
	transactions  transaction.Repository
	entries       ledger.Repository
	systemAccount uuid.UUID
	logger        *slog.Logger
}

// NewEngine creates a transaction engine and verifies the configured system
// account resolves to an existing, active account. A missing or non-active
// system account is a deployment fault and fails with ConfigurationError.
func NewEngine(
	ctx context.Context,
	logger *slog.Logger,
	db AtomicRunner,
	accounts account.Repository,
	transactions transaction.Repository,
	entries ledger.Repository,
	systemAccountID uuid.UUID,
) (*Engine, error) {
	if systemAccountID == uuid.Nil {
		return nil, shared.NewError(shared.KindConfigurationError, "system account id is not configured")
	}

	sysAcc, err := accounts.GetByID(ctx, systemAccountID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound{}) {
			return nil, shared.WrapError(shared.KindConfigurationError, err, "system account %s does not exist", systemAccountID.String())
		}
		return nil, shared.WrapError(shared.KindInternal, err, "failed to verify system account")
	}
	if !sysAcc.IsActive() {
		return nil, shared.NewError(shared.KindConfigurationError, "system account %s is not active", systemAccountID.String())
	}

	logger.Info("Transaction engine initialized",
		"system_account_id", systemAccountID.String(),
		"system_account_currency", sysAcc.Currency,
	)

	return &Engine{
		db:            db,
		accounts:      accounts,
		transactions:  transactions,
		entries:       entries,
		systemAccount: systemAccountID,
		logger:        logger,
	}, nil
}

// posting describes one double-entry operation: the debited account pays,
// the credited account receives. The transaction record's source is always
// the debited account and its destination the credited one.
type posting struct {
	txType       shared.TransactionType
	debitAccount uuid.UUID
	creditAcct   uuid.UUID
	amount       int64
	currency     string
	description  string

	// checkBalance guards the debited account against overdraft. Deposits
	// leave it off: the system account is an unconstrained settlement
	// account and may go negative. Documented policy, not an oversight.
	checkBalance bool
}

// Transfer moves amount between two ordinary accounts, debiting source and
// crediting destination. The source balance must cover the amount.
func (e *Engine) Transfer(ctx context.Context, sourceID, destinationID uuid.UUID, amount int64, currency, description string) (*transaction.Transaction, error) {
	if sourceID == destinationID {
		return nil, shared.NewError(shared.KindInvalidState, "source and destination accounts must differ")
	}
	if sourceID == e.systemAccount || destinationID == e.systemAccount {
		return nil, shared.NewError(shared.KindInvalidState, "transfers between ordinary accounts cannot reference the system account")
	}

	return e.run(ctx, posting{
		txType:       shared.TransactionTypeTransfer,
		debitAccount: sourceID,
		creditAcct:   destinationID,
		amount:       amount,
		currency:     currency,
		description:  description,
		checkBalance: true,
	})
}

// Deposit credits the target account, debiting the system account. The
// system account's balance is deliberately not checked.
func (e *Engine) Deposit(ctx context.Context, accountID uuid.UUID, amount int64, currency, description string) (*transaction.Transaction, error) {
	if accountID == e.systemAccount {
		return nil, shared.NewError(shared.KindInvalidState, "cannot deposit into the system account")
	}

	return e.run(ctx, posting{
		txType:       shared.TransactionTypeDeposit,
		debitAccount: e.systemAccount,
		creditAcct:   accountID,
		amount:       amount,
		currency:     currency,
		description:  description,
		checkBalance: false,
	})
}

// Withdraw debits the target account, crediting the system account. The
// target balance must cover the amount.
func (e *Engine) Withdraw(ctx context.Context, accountID uuid.UUID, amount int64, currency, description string) (*transaction.Transaction, error) {
	if accountID == e.systemAccount {
		return nil, shared.NewError(shared.KindInvalidState, "cannot withdraw from the system account")
	}

	return e.run(ctx, posting{
		txType:       shared.TransactionTypeWithdrawal,
		debitAccount: accountID,
		creditAcct:   e.systemAccount,
		amount:       amount,
		currency:     currency,
		description:  description,
		checkBalance: true,
	})
}

// run executes the shared state machine inside one atomic scope. Every
// failure between lock acquisition and finalization aborts the scope: no
// transaction record, no entries, locks released with no effect.
func (e *Engine) run(ctx context.Context, p posting) (*transaction.Transaction, error) {
	// The HTTP layer already rejects non-positive amounts; reaching this
	// guard indicates a programming error in a caller.
	if p.amount <= 0 {
		return nil, shared.NewError(shared.KindInternal, "amount must be positive, got %d", p.amount)
	}

	var completed *transaction.Transaction
	err := e.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		accountsTx := e.accounts.WithTx(tx)
		transactionsTx := e.transactions.WithTx(tx)
		entriesTx := e.entries.WithTx(tx)

		// Lock both accounts in ascending id order and re-read them under
		// lock. The deterministic total order is what prevents deadlock
		// between concurrent operations naming the pair in opposite roles.
		locked, err := accountsTx.LockAllForUpdate(ctx, p.debitAccount, p.creditAcct)
		if err != nil {
			return e.classifyLockError(err)
		}

		for _, acc := range locked {
			if err := e.validateAccount(acc, p.currency); err != nil {
				return err
			}
		}

		if p.checkBalance {
			calc := NewBalanceCalculator(entriesTx)
			balance, err := calc.Balance(ctx, p.debitAccount)
			if err != nil {
				return shared.WrapError(shared.KindInternal, err, "failed to read balance of account %s", p.debitAccount.String())
			}
			if balance < p.amount {
				return shared.NewError(shared.KindInsufficientFunds,
					"account %s holds %d, requested %d", p.debitAccount.String(), balance, p.amount)
			}
		}

		txn, err := transaction.NewTransaction(p.txType, p.debitAccount, p.creditAcct, p.amount, p.currency, p.description)
		if err != nil {
			return shared.WrapError(shared.KindInternal, err, "invalid transaction")
		}
		if err := transactionsTx.Create(ctx, txn); err != nil {
			return shared.WrapError(shared.KindInternal, err, "failed to create transaction record")
		}

		debitEntry, err := ledger.NewEntry(p.debitAccount, txn.ID, shared.EntryTypeDebit, p.amount)
		if err != nil {
			return shared.WrapError(shared.KindInternal, err, "invalid debit entry")
		}
		if err := entriesTx.Append(ctx, debitEntry); err != nil {
			return shared.WrapError(shared.KindInternal, err, "failed to append debit entry")
		}

		creditEntry, err := ledger.NewEntry(p.creditAcct, txn.ID, shared.EntryTypeCredit, p.amount)
		if err != nil {
			return shared.WrapError(shared.KindInternal, err, "invalid credit entry")
		}
		if err := entriesTx.Append(ctx, creditEntry); err != nil {
			return shared.WrapError(shared.KindInternal, err, "failed to append credit entry")
		}

		completed, err = transactionsTx.Finalize(ctx, txn.ID)
		if err != nil {
			return shared.WrapError(shared.KindInternal, err, "failed to finalize transaction %s", txn.ID.String())
		}

		return nil
	})
	if err != nil {
		var tagged *shared.Error
		if !errors.As(err, &tagged) {
			// Begin/commit failures surface here untagged
			err = shared.WrapError(shared.KindInternal, err, "transaction scope failed")
		}
		e.logger.Warn("Operation aborted",
			"type", string(p.txType),
			"debit_account", p.debitAccount.String(),
			"credit_account", p.creditAcct.String(),
			"amount", p.amount,
			"error", err,
		)
		return nil, err
	}

	e.logger.Info("Transaction completed",
		"transaction_id", completed.ID.String(),
		"type", string(completed.Type),
		"debit_account", completed.SourceAccountID.String(),
		"credit_account", completed.DestinationAccountID.String(),
		"amount", completed.Amount,
		"currency", completed.Currency,
	)

	return completed, nil
}

// classifyLockError maps a lock-time failure to the taxonomy. A missing
// system account at this point means configuration drifted after startup.
func (e *Engine) classifyLockError(err error) error {
	var notFound account.ErrAccountNotFound
	if errors.As(err, &notFound) {
		if notFound.AccountID == e.systemAccount {
			return shared.WrapError(shared.KindConfigurationError, err, "system account %s does not exist", notFound.AccountID.String())
		}
		return shared.WrapError(shared.KindNotFound, err, "account %s does not exist", notFound.AccountID.String())
	}
	return shared.WrapError(shared.KindInternal, err, "failed to lock accounts")
}

// validateAccount enforces status and currency for one locked account.
// System-account violations are configuration faults, not caller errors.
func (e *Engine) validateAccount(acc *account.Account, currency string) error {
	isSystem := acc.ID == e.systemAccount

	if !acc.IsActive() {
		if isSystem {
			return shared.NewError(shared.KindConfigurationError, "system account %s is not active", acc.ID.String())
		}
		return shared.NewError(shared.KindInvalidState, "account %s is %s", acc.ID.String(), string(acc.Status))
	}

	if acc.Currency != currency {
		if isSystem {
			return shared.NewError(shared.KindConfigurationError,
				"system account %s holds %s, requested %s", acc.ID.String(), acc.Currency, currency)
		}
		return shared.NewError(shared.KindCurrencyMismatch,
			"account %s holds %s, requested %s", acc.ID.String(), acc.Currency, currency)
	}

	return nil
}
