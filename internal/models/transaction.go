package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether the record credited or debited the
// affected account.
type TransactionType string

const (
	Credit TransactionType = "CREDIT"
	Debit  TransactionType = "DEBIT"
)

// TransactionStatus records the outcome of the recorded operation.
type TransactionStatus string

const (
	StatusSuccess TransactionStatus = "SUCCESS"
	StatusFailed  TransactionStatus = "FAILED"
)

// Transaction represents one immutable ledger audit record as persisted.
// Rows are insert-only; there is no update path.
type Transaction struct {
	TransactionID string            `db:"transaction_id"`
	SenderID      *string           `db:"sender_id"`   // Nullable
	ReceiverID    string            `db:"receiver_id"` // Affected account
	CampaignID    *string           `db:"campaign_id"` // Nullable, campaign debits only
	Type          TransactionType   `db:"type"`
	Amount        decimal.Decimal   `db:"amount"`
	BalanceBefore decimal.Decimal   `db:"balance_before"`
	BalanceAfter  decimal.Decimal   `db:"balance_after"`
	Status        TransactionStatus `db:"status"`
	CreatedAt     time.Time         `db:"created_at"`
}
