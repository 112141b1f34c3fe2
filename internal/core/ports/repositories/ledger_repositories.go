package repositories

import (
	"context"

	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferFunc decides what a ledger unit of work does once the affected
// accounts are locked. It receives the locked accounts keyed by ID and
// returns the balance deltas to apply and the audit transaction to append.
// Returning an error aborts the unit of work and discards all mutations.
type TransferFunc func(locked map[string]domain.Account) (map[string]decimal.Decimal, *domain.Transaction, error)

// LedgerWriter defines the atomic write operations of the ledger.
type LedgerWriter interface {
	// PerformTransfer runs fn inside a single unit of work over the given
	// accounts: lock, decide, apply deltas, append the audit transaction,
	// commit. Rollback on every error path is owned by the implementation;
	// callers cannot leak an open transaction. Detected write conflicts are
	// reported as ErrConflict.
	PerformTransfer(ctx context.Context, actorID string, accountIDs []string, fn TransferFunc) (*domain.Transaction, error)

	// SaveTransaction appends a transaction outside any unit of work. Used
	// for the best-effort FAILED audit records written after an aborted
	// operation.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionReader defines read operations over the transaction log.
type TransactionReader interface {
	// ListTransactionsByAccount returns the most recent transactions that
	// reference the account as sender or receiver, newest first, at most
	// limit entries.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerWriter
	TransactionReader
}
