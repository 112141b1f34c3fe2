package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/apperrors"
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/domain"
	portsrepo "github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/ports/repositories"
	portssvc "github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/ports/services"
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/middleware"
)

const (
	defaultMaxConflictRetries = 3
	defaultHistoryLimit       = 50
)

// ledgerService orchestrates credits and campaign debits as single units of
// work: validate, consult the credit policy, mutate balances, append the
// audit record, commit or discard everything together.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountReader
	policy      CreditPolicy

	maxConflictRetries int
	historyLimit       int
	// When true, FAILED audit records snapshot the affected account's real
	// balance instead of the neutral zero marker.
	snapshotFailureBalances bool
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithMaxConflictRetries bounds how often a unit of work is replayed after a
// detected write conflict before ErrConflict is surfaced.
func WithMaxConflictRetries(n int) LedgerServiceOption {
	return func(s *ledgerService) {
		if n >= 0 {
			s.maxConflictRetries = n
		}
	}
}

// WithHistoryDefaultLimit sets the page size used when history callers do
// not pass a limit.
func WithHistoryDefaultLimit(n int) LedgerServiceOption {
	return func(s *ledgerService) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithFailureBalanceSnapshot makes FAILED audit records carry the affected
// account's balance at failure time. The default keeps the historical
// zero/zero marker.
func WithFailureBalanceSnapshot(enabled bool) LedgerServiceOption {
	return func(s *ledgerService) {
		s.snapshotFailureBalances = enabled
	}
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountReader, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		ledgerRepo:         ledgerRepo,
		accountRepo:        accountRepo,
		maxConflictRetries: defaultMaxConflictRetries,
		historyLimit:       defaultHistoryLimit,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreditBalance implements portssvc.LedgerSvcFacade.
func (s *ledgerService) CreditBalance(ctx context.Context, senderID, receiverID string, amount decimal.Decimal) (*portssvc.CreditResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Shape validation happens before the unit of work begins; failures here
	// leave no audit record.
	if senderID == "" || receiverID == "" {
		return nil, fmt.Errorf("%w: sender and receiver ids are required", apperrors.ErrValidation)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, amount.String())
	}
	var result portssvc.CreditResult
	err := s.withConflictRetry(ctx, func() error {
		txn, err := s.ledgerRepo.PerformTransfer(ctx, senderID, []string{senderID, receiverID}, func(locked map[string]domain.Account) (map[string]decimal.Decimal, *domain.Transaction, error) {
			sender := locked[senderID]
			receiver := locked[receiverID]

			if !s.policy.CanCredit(sender.Role) {
				return nil, nil, fmt.Errorf("%w: role %s may not credit accounts", apperrors.ErrForbidden, sender.Role)
			}
			decision, err := s.policy.AuthorizeCredit(sender.Role, amount, sender.Balance)
			if err != nil {
				return nil, nil, err
			}
			if senderID == receiverID && !decision.SenderDebit.IsZero() {
				// A zero-sum transfer to self moves nothing; only minting to
				// self is meaningful.
				return nil, nil, fmt.Errorf("%w: zero-sum transfer to self is a no-op", apperrors.ErrValidation)
			}

			deltas := map[string]decimal.Decimal{
				receiverID: amount,
			}
			if !decision.SenderDebit.IsZero() {
				deltas[senderID] = deltas[senderID].Sub(decision.SenderDebit)
			}

			now := time.Now().UTC()
			record := domain.Transaction{
				TransactionID: uuid.NewString(),
				SenderID:      &senderID,
				ReceiverID:    receiverID,
				Type:          domain.Credit,
				Amount:        amount,
				BalanceBefore: receiver.Balance,
				BalanceAfter:  receiver.Balance.Add(amount),
				Status:        domain.StatusSuccess,
				CreatedAt:     now,
			}

			sender.Balance = sender.Balance.Sub(decision.SenderDebit)
			receiver.Balance = receiver.Balance.Add(amount)
			if senderID == receiverID {
				sender = receiver
			}
			result.Sender = sender
			result.Receiver = receiver
			return deltas, &record, nil
		})
		if err != nil {
			return err
		}
		result.Transaction = *txn
		return nil
	})
	if err != nil {
		logger.Warn("Credit failed",
			slog.String("sender_id", senderID),
			slog.String("receiver_id", receiverID),
			slog.String("amount", amount.String()),
			slog.String("error", err.Error()))
		s.recordFailure(ctx, &senderID, receiverID, nil, amount, domain.Credit)
		return nil, err
	}

	logger.Info("Credit committed",
		slog.String("transaction_id", result.Transaction.TransactionID),
		slog.String("sender_id", senderID),
		slog.String("receiver_id", receiverID),
		slog.String("amount", amount.String()))
	return &result, nil
}

// DebitForCampaign implements portssvc.LedgerSvcFacade.
//
// The cost model is one point per recipient, so the debit is capped at the
// available balance and the caller learns how many recipients were actually
// funded. Only a fully unfunded debit fails.
func (s *ledgerService) DebitForCampaign(ctx context.Context, userID, campaignID string, requestedAmount int64) (*portssvc.CampaignDebitResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if userID == "" || campaignID == "" {
		return nil, fmt.Errorf("%w: user and campaign ids are required", apperrors.ErrValidation)
	}
	if requestedAmount <= 0 {
		return nil, fmt.Errorf("%w: requested amount must be positive, got %d", apperrors.ErrValidation, requestedAmount)
	}
	requested := decimal.NewFromInt(requestedAmount)

	var result portssvc.CampaignDebitResult
	err := s.withConflictRetry(ctx, func() error {
		txn, err := s.ledgerRepo.PerformTransfer(ctx, userID, []string{userID}, func(locked map[string]domain.Account) (map[string]decimal.Decimal, *domain.Transaction, error) {
			account := locked[userID]

			actual := decimal.Min(requested, account.Balance)
			if actual.LessThanOrEqual(decimal.Zero) {
				return nil, nil, fmt.Errorf("%w: balance %s cannot fund any recipients",
					apperrors.ErrInsufficientBalance, account.Balance.String())
			}

			now := time.Now().UTC()
			record := domain.Transaction{
				TransactionID: uuid.NewString(),
				ReceiverID:    userID,
				CampaignID:    &campaignID,
				Type:          domain.Debit,
				Amount:        actual,
				BalanceBefore: account.Balance,
				BalanceAfter:  account.Balance.Sub(actual),
				Status:        domain.StatusSuccess,
				CreatedAt:     now,
			}

			account.Balance = account.Balance.Sub(actual)
			result.Account = account
			result.ActualNumbersProcessed = actual.IntPart()
			return map[string]decimal.Decimal{userID: actual.Neg()}, &record, nil
		})
		if err != nil {
			return err
		}
		result.Transaction = *txn
		return nil
	})
	if err != nil {
		logger.Warn("Campaign debit failed",
			slog.String("user_id", userID),
			slog.String("campaign_id", campaignID),
			slog.Int64("requested_amount", requestedAmount),
			slog.String("error", err.Error()))
		s.recordFailure(ctx, nil, userID, &campaignID, requested, domain.Debit)
		return nil, err
	}

	logger.Info("Campaign debit committed",
		slog.String("transaction_id", result.Transaction.TransactionID),
		slog.String("user_id", userID),
		slog.String("campaign_id", campaignID),
		slog.Int64("requested_amount", requestedAmount),
		slog.Int64("actual_numbers_processed", result.ActualNumbersProcessed))
	return &result, nil
}

// GetTransactionHistory implements portssvc.LedgerSvcFacade.
func (s *ledgerService) GetTransactionHistory(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", apperrors.ErrValidation)
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be a positive integer, got %d", apperrors.ErrValidation, limit)
	}
	if limit == 0 {
		limit = s.historyLimit
	}
	return s.ledgerRepo.ListTransactionsByAccount(ctx, accountID, limit)
}

// withConflictRetry replays op after detected write conflicts, up to the
// configured bound, then surfaces the conflict as transient.
func (s *ledgerService) withConflictRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; attempt <= s.maxConflictRetries; attempt++ {
		err = op()
		if err == nil || !errors.Is(err, apperrors.ErrConflict) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
		middleware.GetLoggerFromCtx(ctx).Warn("Retrying after write conflict", slog.Int("attempt", attempt+1))
	}
	return err
}

// recordFailure appends a detached FAILED audit record after an aborted
// operation. It is best-effort: its own failure is logged, never propagated
// over the original error.
func (s *ledgerService) recordFailure(ctx context.Context, senderID *string, receiverID string, campaignID *string, amount decimal.Decimal, txnType domain.TransactionType) {
	logger := middleware.GetLoggerFromCtx(ctx)

	balanceBefore, balanceAfter := decimal.Zero, decimal.Zero
	if s.snapshotFailureBalances {
		if account, err := s.accountRepo.FindAccountByID(ctx, receiverID); err == nil {
			balanceBefore = account.Balance
			balanceAfter = account.Balance
		}
	}

	record := domain.Transaction{
		TransactionID: uuid.NewString(),
		SenderID:      senderID,
		ReceiverID:    receiverID,
		CampaignID:    campaignID,
		Type:          txnType,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Status:        domain.StatusFailed,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.ledgerRepo.SaveTransaction(ctx, record); err != nil {
		logger.Error("Failed to write failure audit record",
			slog.String("receiver_id", receiverID),
			slog.String("error", err.Error()))
	}
}
