package pgsql

import (
	"context"
	"sort"

	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/apperrors"
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/domain"
	portsrepo "github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/ports/repositories"
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/models"
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
}

// newPgxLedgerRepository creates a new repository for ledger units of work
// and the transaction log.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const insertTransactionQuery = `
	INSERT INTO transactions (transaction_id, sender_id, receiver_id, campaign_id, type, amount, balance_before, balance_after, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

// PerformTransfer runs fn inside a single database transaction: lock the
// accounts, let fn decide the balance deltas and the audit record, apply
// both, commit. Every error path rolls back, so no partial mutation is ever
// observable.
func (r *PgxLedgerRepository) PerformTransfer(ctx context.Context, actorID string, accountIDs []string, fn portsrepo.TransferFunc) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// Ignored if the transaction commits.
	defer r.Rollback(ctx, tx)

	// Stable lock order avoids deadlocks between concurrent transfers that
	// touch the same account pair in opposite directions.
	ids := uniqueSorted(accountIDs)

	locked, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	deltas, record, err := fn(locked)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperrors.NewAppError(500, "transfer decision produced no audit record", nil)
	}

	if len(deltas) > 0 {
		if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, deltas, actorID, record.CreatedAt); err != nil {
			return nil, err
		}
	}

	modelTxn := mapping.ToModelTransaction(*record)
	if _, err := tx.Exec(ctx, insertTransactionQuery,
		modelTxn.TransactionID,
		modelTxn.SenderID,
		modelTxn.ReceiverID,
		modelTxn.CampaignID,
		modelTxn.Type,
		modelTxn.Amount,
		modelTxn.BalanceBefore,
		modelTxn.BalanceAfter,
		modelTxn.Status,
		modelTxn.CreatedAt,
	); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert transaction "+modelTxn.TransactionID, translateConflict(err))
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return record, nil
}

// SaveTransaction appends a transaction outside any unit of work. Used for
// the detached FAILED audit records.
func (r *PgxLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	modelTxn := mapping.ToModelTransaction(txn)
	if _, err := r.Pool.Exec(ctx, insertTransactionQuery,
		modelTxn.TransactionID,
		modelTxn.SenderID,
		modelTxn.ReceiverID,
		modelTxn.CampaignID,
		modelTxn.Type,
		modelTxn.Amount,
		modelTxn.BalanceBefore,
		modelTxn.BalanceAfter,
		modelTxn.Status,
		modelTxn.CreatedAt,
	); err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+modelTxn.TransactionID, err)
	}
	return nil
}

// ListTransactionsByAccount retrieves the most recent transactions that
// reference the account as sender or receiver, newest first.
func (r *PgxLedgerRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, sender_id, receiver_id, campaign_id, type, amount, balance_before, balance_after, status, created_at
		FROM transactions
		WHERE receiver_id = $1 OR sender_id = $1
		ORDER BY created_at DESC, transaction_id DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for account "+accountID, err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(
			&t.TransactionID,
			&t.SenderID,
			&t.ReceiverID,
			&t.CampaignID,
			&t.Type,
			&t.Amount,
			&t.BalanceBefore,
			&t.BalanceAfter,
			&t.Status,
			&t.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row for account "+accountID, err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows for account "+accountID, err)
	}

	return mapping.ToDomainTransactionSlice(transactions), nil
}

// uniqueSorted returns the unique ids in ascending order.
func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
