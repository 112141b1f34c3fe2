package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/apperrors"
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/domain"
	portsrepo "github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/ports/repositories"
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/services"
)

// fakeLedgerStore is an in-memory stand-in for the pgsql repositories. It
// applies transfer callbacks under a mutex so concurrent units of work see
// consistent balances, the way row locks serialize them in the real store.
type fakeLedgerStore struct {
	mu        sync.Mutex
	accounts  map[string]domain.Account
	committed []domain.Transaction // records written inside a unit of work
	detached  []domain.Transaction // records written via SaveTransaction

	transferCalls      int
	conflictsRemaining int // PerformTransfer fails with ErrConflict while > 0
	saveErr            error
	lastListLimit      int
}

func newFakeLedgerStore(accounts ...domain.Account) *fakeLedgerStore {
	store := &fakeLedgerStore{accounts: make(map[string]domain.Account)}
	for _, a := range accounts {
		store.accounts[a.AccountID] = a
	}
	return store
}

func (f *fakeLedgerStore) PerformTransfer(ctx context.Context, actorID string, accountIDs []string, fn portsrepo.TransferFunc) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.transferCalls++
	if f.conflictsRemaining > 0 {
		f.conflictsRemaining--
		return nil, fmt.Errorf("serialization failure: %w", apperrors.ErrConflict)
	}

	locked := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		account, ok := f.accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		locked[id] = account
	}

	deltas, record, err := fn(locked)
	if err != nil {
		return nil, err
	}

	for id, delta := range deltas {
		account := f.accounts[id]
		account.Balance = account.Balance.Add(delta)
		if account.Balance.IsNegative() {
			return nil, fmt.Errorf("%w: balance for %s would go negative", apperrors.ErrInsufficientBalance, id)
		}
		f.accounts[id] = account
	}
	f.committed = append(f.committed, *record)
	return record, nil
}

func (f *fakeLedgerStore) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.detached = append(f.detached, txn)
	return nil
}

func (f *fakeLedgerStore) ListTransactionsByAccount(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastListLimit = limit

	var out []domain.Transaction
	all := append(append([]domain.Transaction{}, f.committed...), f.detached...)
	for _, txn := range all {
		if txn.ReceiverID == accountID || (txn.SenderID != nil && *txn.SenderID == accountID) {
			out = append(out, txn)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeLedgerStore) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return &account, nil
}

func (f *fakeLedgerStore) balance(accountID string) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[accountID].Balance
}

func account(id string, role domain.Role, balance int64) domain.Account {
	return domain.Account{
		AccountID: id,
		Name:      id,
		Role:      role,
		Balance:   decimal.NewFromInt(balance),
	}
}

// --- Test Suite Setup ---

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
}

// --- Credit ---

func (suite *LedgerServiceTestSuite) TestCreditBalance_AdminMints() {
	store := newFakeLedgerStore(
		account("admin-1", domain.RoleAdmin, 0),
		account("user-1", domain.RoleUser, 25),
	)
	svc := services.NewLedgerService(store, store)

	result, err := svc.CreditBalance(suite.ctx, "admin-1", "user-1", decimal.NewFromInt(100))

	suite.Require().NoError(err)
	suite.True(result.Receiver.Balance.Equal(decimal.NewFromInt(125)))
	suite.True(result.Sender.Balance.Equal(decimal.Zero), "admin credits mint, nothing is debited")
	suite.True(store.balance("user-1").Equal(decimal.NewFromInt(125)))
	suite.True(store.balance("admin-1").Equal(decimal.Zero))

	suite.Require().Len(store.committed, 1)
	txn := store.committed[0]
	suite.Equal(domain.Credit, txn.Type)
	suite.Equal(domain.StatusSuccess, txn.Status)
	suite.Require().NotNil(txn.SenderID)
	suite.Equal("admin-1", *txn.SenderID)
	suite.Equal("user-1", txn.ReceiverID)
	suite.True(txn.Amount.Equal(decimal.NewFromInt(100)))
	suite.True(txn.BalanceBefore.Equal(decimal.NewFromInt(25)))
	suite.True(txn.BalanceAfter.Equal(decimal.NewFromInt(125)))
	suite.Nil(txn.CampaignID)
}

func (suite *LedgerServiceTestSuite) TestCreditBalance_ResellerZeroSum() {
	store := newFakeLedgerStore(
		account("reseller-1", domain.RoleReseller, 200),
		account("user-1", domain.RoleUser, 0),
	)
	svc := services.NewLedgerService(store, store)

	result, err := svc.CreditBalance(suite.ctx, "reseller-1", "user-1", decimal.NewFromInt(80))

	suite.Require().NoError(err)
	suite.True(result.Sender.Balance.Equal(decimal.NewFromInt(120)))
	suite.True(result.Receiver.Balance.Equal(decimal.NewFromInt(80)))
	suite.True(store.balance("reseller-1").Equal(decimal.NewFromInt(120)))
	suite.True(store.balance("user-1").Equal(decimal.NewFromInt(80)))
	suite.Len(store.detached, 0)
}

func (suite *LedgerServiceTestSuite) TestCreditBalance_ResellerInsufficientBalance() {
	store := newFakeLedgerStore(
		account("reseller-1", domain.RoleReseller, 50),
		account("user-1", domain.RoleUser, 0),
	)
	svc := services.NewLedgerService(store, store)

	result, err := svc.CreditBalance(suite.ctx, "reseller-1", "user-1", decimal.NewFromInt(80))

	suite.Require().ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.Nil(result)
	suite.True(store.balance("reseller-1").Equal(decimal.NewFromInt(50)), "balances untouched after abort")
	suite.True(store.balance("user-1").Equal(decimal.Zero))
	suite.Len(store.committed, 0)

	// The aborted attempt still leaves a FAILED audit record.
	suite.Require().Len(store.detached, 1)
	failure := store.detached[0]
	suite.Equal(domain.StatusFailed, failure.Status)
	suite.Equal(domain.Credit, failure.Type)
	suite.True(failure.Amount.Equal(decimal.NewFromInt(80)))
	suite.Require().NotNil(failure.SenderID)
	suite.Equal("reseller-1", *failure.SenderID)
	suite.Equal("user-1", failure.ReceiverID)
	suite.True(failure.BalanceBefore.IsZero())
	suite.True(failure.BalanceAfter.IsZero())
}

func (suite *LedgerServiceTestSuite) TestCreditBalance_UserForbidden() {
	store := newFakeLedgerStore(
		account("user-1", domain.RoleUser, 500),
		account("user-2", domain.RoleUser, 0),
	)
	svc := services.NewLedgerService(store, store)

	_, err := svc.CreditBalance(suite.ctx, "user-1", "user-2", decimal.NewFromInt(10))

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.True(store.balance("user-1").Equal(decimal.NewFromInt(500)))
	suite.Len(store.detached, 1)
	suite.Equal(domain.StatusFailed, store.detached[0].Status)
}

func (suite *LedgerServiceTestSuite) TestCreditBalance_UnknownRoleForbidden() {
	store := newFakeLedgerStore(
		account("odd-1", domain.Role("AUDITOR"), 500),
		account("user-1", domain.RoleUser, 0),
	)
	svc := services.NewLedgerService(store, store)

	_, err := svc.CreditBalance(suite.ctx, "odd-1", "user-1", decimal.NewFromInt(10))

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.True(store.balance("user-1").IsZero())
	suite.Len(store.committed, 0)
}

func (suite *LedgerServiceTestSuite) TestCreditBalance_ReceiverNotFound() {
	store := newFakeLedgerStore(account("admin-1", domain.RoleAdmin, 0))
	svc := services.NewLedgerService(store, store)

	_, err := svc.CreditBalance(suite.ctx, "admin-1", "ghost", decimal.NewFromInt(10))

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Len(store.committed, 0)
	suite.Len(store.detached, 1)
}

func (suite *LedgerServiceTestSuite) TestCreditBalance_InvalidAmountLeavesNoRecord() {
	store := newFakeLedgerStore(
		account("admin-1", domain.RoleAdmin, 0),
		account("user-1", domain.RoleUser, 0),
	)
	svc := services.NewLedgerService(store, store)

	_, err := svc.CreditBalance(suite.ctx, "admin-1", "user-1", decimal.Zero)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = svc.CreditBalance(suite.ctx, "admin-1", "user-1", decimal.NewFromInt(-5))
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = svc.CreditBalance(suite.ctx, "", "user-1", decimal.NewFromInt(5))
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	// Shape validation fails before the unit of work: no audit records, no
	// transfer attempts.
	suite.Equal(0, store.transferCalls)
	suite.Len(store.detached, 0)
}

func (suite *LedgerServiceTestSuite) TestCreditBalance_AdminSelfMint() {
	store := newFakeLedgerStore(account("admin-1", domain.RoleAdmin, 10))
	svc := services.NewLedgerService(store, store)

	result, err := svc.CreditBalance(suite.ctx, "admin-1", "admin-1", decimal.NewFromInt(90))

	suite.Require().NoError(err)
	suite.True(result.Sender.Balance.Equal(decimal.NewFromInt(100)))
	suite.True(result.Receiver.Balance.Equal(decimal.NewFromInt(100)))
	suite.True(store.balance("admin-1").Equal(decimal.NewFromInt(100)))
}

func (suite *LedgerServiceTestSuite) TestCreditBalance_ResellerSelfTransferRejected() {
	store := newFakeLedgerStore(account("reseller-1", domain.RoleReseller, 100))
	svc := services.NewLedgerService(store, store)

	_, err := svc.CreditBalance(suite.ctx, "reseller-1", "reseller-1", decimal.NewFromInt(10))

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.True(store.balance("reseller-1").Equal(decimal.NewFromInt(100)))
}

func (suite *LedgerServiceTestSuite) TestCreditBalance_RetriesOnConflict() {
	store := newFakeLedgerStore(
		account("admin-1", domain.RoleAdmin, 0),
		account("user-1", domain.RoleUser, 0),
	)
	store.conflictsRemaining = 2
	svc := services.NewLedgerService(store, store)

	result, err := svc.CreditBalance(suite.ctx, "admin-1", "user-1", decimal.NewFromInt(5))

	suite.Require().NoError(err)
	suite.Equal(3, store.transferCalls, "two conflicted attempts plus the successful one")
	suite.True(result.Receiver.Balance.Equal(decimal.NewFromInt(5)))
	suite.Len(store.detached, 0)
}

func (suite *LedgerServiceTestSuite) TestCreditBalance_ConflictRetriesExhausted() {
	store := newFakeLedgerStore(
		account("admin-1", domain.RoleAdmin, 0),
		account("user-1", domain.RoleUser, 0),
	)
	store.conflictsRemaining = 100
	svc := services.NewLedgerService(store, store, services.WithMaxConflictRetries(2))

	_, err := svc.CreditBalance(suite.ctx, "admin-1", "user-1", decimal.NewFromInt(5))

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.Equal(3, store.transferCalls, "initial attempt plus two retries")
	suite.Require().Len(store.detached, 1)
	suite.Equal(domain.StatusFailed, store.detached[0].Status)
}

func (suite *LedgerServiceTestSuite) TestCreditBalance_FailureRecordSnapshotsBalance() {
	store := newFakeLedgerStore(
		account("reseller-1", domain.RoleReseller, 50),
		account("user-1", domain.RoleUser, 30),
	)
	svc := services.NewLedgerService(store, store, services.WithFailureBalanceSnapshot(true))

	_, err := svc.CreditBalance(suite.ctx, "reseller-1", "user-1", decimal.NewFromInt(80))

	suite.Require().ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.Require().Len(store.detached, 1)
	suite.True(store.detached[0].BalanceBefore.Equal(decimal.NewFromInt(30)))
	suite.True(store.detached[0].BalanceAfter.Equal(decimal.NewFromInt(30)))
}

func (suite *LedgerServiceTestSuite) TestCreditBalance_ConcurrentCreditsSum() {
	store := newFakeLedgerStore(
		account("admin-1", domain.RoleAdmin, 0),
		account("user-1", domain.RoleUser, 0),
	)
	svc := services.NewLedgerService(store, store)

	const workers = 20
	amount := decimal.NewFromInt(7)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreditBalance(suite.ctx, "admin-1", "user-1", amount)
			suite.NoError(err)
		}()
	}
	wg.Wait()

	suite.True(store.balance("user-1").Equal(decimal.NewFromInt(7*workers)))
	suite.Require().Len(store.committed, workers)

	// The audit records must chain: sorted by BalanceBefore, each record
	// starts where the previous one left off, so no credit saw a stale
	// balance.
	records := append([]domain.Transaction{}, store.committed...)
	sort.Slice(records, func(i, j int) bool {
		return records[i].BalanceBefore.LessThan(records[j].BalanceBefore)
	})
	suite.True(records[0].BalanceBefore.IsZero())
	for i, txn := range records {
		suite.True(txn.BalanceAfter.Equal(txn.BalanceBefore.Add(amount)),
			"record %d: after %s != before %s + %s", i, txn.BalanceAfter, txn.BalanceBefore, amount)
		if i > 0 {
			suite.True(txn.BalanceBefore.Equal(records[i-1].BalanceAfter),
				"record %d does not start where record %d left off", i, i-1)
		}
	}
	suite.True(records[workers-1].BalanceAfter.Equal(decimal.NewFromInt(7 * workers)))
}

// --- Campaign debit ---

func (suite *LedgerServiceTestSuite) TestDebitForCampaign_FullFunding() {
	store := newFakeLedgerStore(account("user-1", domain.RoleUser, 500))
	svc := services.NewLedgerService(store, store)

	result, err := svc.DebitForCampaign(suite.ctx, "user-1", "camp-42", 200)

	suite.Require().NoError(err)
	suite.Equal(int64(200), result.ActualNumbersProcessed)
	suite.True(result.Account.Balance.Equal(decimal.NewFromInt(300)))
	suite.True(store.balance("user-1").Equal(decimal.NewFromInt(300)))

	suite.Require().Len(store.committed, 1)
	txn := store.committed[0]
	suite.Equal(domain.Debit, txn.Type)
	suite.Equal(domain.StatusSuccess, txn.Status)
	suite.Nil(txn.SenderID)
	suite.Equal("user-1", txn.ReceiverID)
	suite.Require().NotNil(txn.CampaignID)
	suite.Equal("camp-42", *txn.CampaignID)
	suite.True(txn.Amount.Equal(decimal.NewFromInt(200)))
	suite.True(txn.BalanceBefore.Equal(decimal.NewFromInt(500)))
	suite.True(txn.BalanceAfter.Equal(decimal.NewFromInt(300)))
}

func (suite *LedgerServiceTestSuite) TestDebitForCampaign_PartialFundingCapsAtBalance() {
	store := newFakeLedgerStore(account("user-1", domain.RoleUser, 300))
	svc := services.NewLedgerService(store, store)

	result, err := svc.DebitForCampaign(suite.ctx, "user-1", "camp-42", 1000)

	suite.Require().NoError(err)
	suite.Equal(int64(300), result.ActualNumbersProcessed, "debit is capped at the available balance")
	suite.True(store.balance("user-1").Equal(decimal.Zero))

	suite.Require().Len(store.committed, 1)
	suite.True(store.committed[0].Amount.Equal(decimal.NewFromInt(300)))
	suite.Equal(domain.StatusSuccess, store.committed[0].Status)
}

func (suite *LedgerServiceTestSuite) TestDebitForCampaign_ZeroBalanceFails() {
	store := newFakeLedgerStore(account("user-1", domain.RoleUser, 0))
	svc := services.NewLedgerService(store, store)

	result, err := svc.DebitForCampaign(suite.ctx, "user-1", "camp-42", 1000)

	suite.Require().ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.Nil(result)
	suite.Len(store.committed, 0)

	suite.Require().Len(store.detached, 1)
	failure := store.detached[0]
	suite.Equal(domain.StatusFailed, failure.Status)
	suite.Equal(domain.Debit, failure.Type)
	suite.Nil(failure.SenderID)
	suite.Require().NotNil(failure.CampaignID)
	suite.Equal("camp-42", *failure.CampaignID)
	suite.True(failure.Amount.Equal(decimal.NewFromInt(1000)), "failure records keep the requested amount")
}

func (suite *LedgerServiceTestSuite) TestDebitForCampaign_InvalidRequestLeavesNoRecord() {
	store := newFakeLedgerStore(account("user-1", domain.RoleUser, 100))
	svc := services.NewLedgerService(store, store)

	_, err := svc.DebitForCampaign(suite.ctx, "user-1", "camp-42", 0)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = svc.DebitForCampaign(suite.ctx, "user-1", "", 10)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	suite.Equal(0, store.transferCalls)
	suite.Len(store.detached, 0)
}

func (suite *LedgerServiceTestSuite) TestDebitForCampaign_FailureRecordSurvivesSaveError() {
	store := newFakeLedgerStore(account("user-1", domain.RoleUser, 0))
	store.saveErr = fmt.Errorf("audit store down")
	svc := services.NewLedgerService(store, store)

	_, err := svc.DebitForCampaign(suite.ctx, "user-1", "camp-42", 10)

	// The original error wins; the audit write failure is only logged.
	suite.Require().ErrorIs(err, apperrors.ErrInsufficientBalance)
}

// --- History ---

func (suite *LedgerServiceTestSuite) TestGetTransactionHistory_DefaultLimit() {
	store := newFakeLedgerStore(
		account("admin-1", domain.RoleAdmin, 0),
		account("user-1", domain.RoleUser, 0),
	)
	svc := services.NewLedgerService(store, store, services.WithHistoryDefaultLimit(5))

	for i := 0; i < 8; i++ {
		_, err := svc.CreditBalance(suite.ctx, "admin-1", "user-1", decimal.NewFromInt(1))
		suite.Require().NoError(err)
	}

	transactions, err := svc.GetTransactionHistory(suite.ctx, "user-1", 0)
	suite.Require().NoError(err)
	suite.Len(transactions, 5)
	suite.Equal(5, store.lastListLimit)

	// Newest first: timestamps never increase along the page.
	for i := 1; i < len(transactions); i++ {
		suite.False(transactions[i-1].CreatedAt.Before(transactions[i].CreatedAt),
			"entry %d is newer than entry %d", i, i-1)
	}

	transactions, err = svc.GetTransactionHistory(suite.ctx, "user-1", 2)
	suite.Require().NoError(err)
	suite.Len(transactions, 2)
	suite.Equal(2, store.lastListLimit)
}

func (suite *LedgerServiceTestSuite) TestGetTransactionHistory_Validation() {
	store := newFakeLedgerStore()
	svc := services.NewLedgerService(store, store)

	_, err := svc.GetTransactionHistory(suite.ctx, "", 10)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = svc.GetTransactionHistory(suite.ctx, "user-1", -1)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestGetTransactionHistory_IncludesFailedRecords() {
	store := newFakeLedgerStore(
		account("reseller-1", domain.RoleReseller, 50),
		account("user-1", domain.RoleUser, 0),
	)
	svc := services.NewLedgerService(store, store)

	_, err := svc.CreditBalance(suite.ctx, "reseller-1", "user-1", decimal.NewFromInt(80))
	suite.Require().ErrorIs(err, apperrors.ErrInsufficientBalance)

	transactions, err := svc.GetTransactionHistory(suite.ctx, "user-1", 0)
	suite.Require().NoError(err)
	suite.Require().Len(transactions, 1)
	suite.Equal(domain.StatusFailed, transactions[0].Status)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
