package dto

import (
	"time"

	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreditRequest is the body of POST /transactions/credit. The sender is the
// authenticated caller.
type CreditRequest struct {
	ReceiverID string          `json:"receiverId" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// CreditResponse returns both affected balances and the audit record.
type CreditResponse struct {
	Sender      AccountResponse     `json:"sender"`
	Receiver    AccountResponse     `json:"receiver"`
	Transaction TransactionResponse `json:"transaction"`
}

// CampaignDebitRequest is the body of POST /transactions/campaign-debit.
// RequestedAmount is the recipient count of the batch; the cost model is one
// point per recipient.
type CampaignDebitRequest struct {
	CampaignID      string `json:"campaignId" binding:"required"`
	RequestedAmount int64  `json:"requestedAmount" binding:"required,gt=0"`
}

// CampaignDebitResponse reports how much of the batch was actually funded.
type CampaignDebitResponse struct {
	Account                AccountResponse     `json:"account"`
	Transaction            TransactionResponse `json:"transaction"`
	ActualNumbersProcessed int64               `json:"actualNumbersProcessed"`
}

// TransactionResponse is the API representation of a ledger audit record.
type TransactionResponse struct {
	TransactionID string                   `json:"transactionID"`
	SenderID      *string                  `json:"senderID,omitempty"`
	ReceiverID    string                   `json:"receiverID"`
	CampaignID    *string                  `json:"campaignID,omitempty"`
	Type          domain.TransactionType   `json:"type"`
	Amount        decimal.Decimal          `json:"amount"`
	BalanceBefore decimal.Decimal          `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal          `json:"balanceAfter"`
	Status        domain.TransactionStatus `json:"status"`
	CreatedAt     time.Time                `json:"createdAt"`
}

// ListTransactionsResponse wraps a history page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a domain Transaction to its API representation.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		SenderID:      t.SenderID,
		ReceiverID:    t.ReceiverID,
		CampaignID:    t.CampaignID,
		Type:          t.Type,
		Amount:        t.Amount,
		BalanceBefore: t.BalanceBefore,
		BalanceAfter:  t.BalanceAfter,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain Transactions.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(ts))
	for i := range ts {
		out[i] = ToTransactionResponse(&ts[i])
	}
	return out
}
