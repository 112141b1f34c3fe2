package repositories

import (
	"context"
	"time"

	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. Provisioning only; balances are
	// mutated exclusively through the ledger unit of work.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations that run inside a ledger
// unit of work.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them for update
	// within a transaction. It fails with ErrNotFound if any requested
	// account is missing.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx applies balance deltas to multiple accounts
	// within a given transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
