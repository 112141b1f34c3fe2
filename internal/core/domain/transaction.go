package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction credited or debited the
// affected account.
type TransactionType string

const (
	Credit TransactionType = "CREDIT"
	Debit  TransactionType = "DEBIT"
)

// TransactionStatus records the outcome of the ledger operation the
// transaction describes.
type TransactionStatus string

const (
	StatusSuccess TransactionStatus = "SUCCESS"
	StatusFailed  TransactionStatus = "FAILED"
)

// Transaction is the immutable audit record of one ledger operation.
// Records are append-only: never updated or deleted after creation.
//
// For StatusSuccess, BalanceBefore and BalanceAfter describe the receiving
// (credit) or debited account and satisfy
// BalanceAfter = BalanceBefore + Amount for credits and
// BalanceBefore - Amount for debits. For StatusFailed no account was
// mutated and the balances are a neutral marker.
type Transaction struct {
	TransactionID string            `json:"transactionID"`        // Primary Key (UUID)
	SenderID      *string           `json:"senderID,omitempty"`   // Absent for campaign debits
	ReceiverID    string            `json:"receiverID"`           // Affected account
	CampaignID    *string           `json:"campaignID,omitempty"` // Set only for campaign debits
	Type          TransactionType   `json:"type"`
	Amount        decimal.Decimal   `json:"amount"` // Positive on success records
	BalanceBefore decimal.Decimal   `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal   `json:"balanceAfter"`
	Status        TransactionStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
}
