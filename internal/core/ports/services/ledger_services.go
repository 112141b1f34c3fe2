package services

import (
	"context"

	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreditResult is returned by a successful balance credit.
type CreditResult struct {
	Sender      domain.Account
	Receiver    domain.Account
	Transaction domain.Transaction
}

// CampaignDebitResult is returned by a successful campaign debit.
// ActualNumbersProcessed may be lower than the requested amount when the
// account could only fund part of the batch; that is graceful degradation,
// not an error.
type CampaignDebitResult struct {
	Account                domain.Account
	Transaction            domain.Transaction
	ActualNumbersProcessed int64
}

// LedgerSvcFacade is the ledger contract consumed by the HTTP gateway.
type LedgerSvcFacade interface {
	// CreditBalance moves amount points to the receiver on behalf of the
	// sender, minting (admin) or transferring zero-sum (reseller) according
	// to the credit policy.
	CreditBalance(ctx context.Context, senderID, receiverID string, amount decimal.Decimal) (*CreditResult, error)

	// DebitForCampaign pays for sending a campaign batch at one point per
	// recipient, capped at the available balance.
	DebitForCampaign(ctx context.Context, userID, campaignID string, requestedAmount int64) (*CampaignDebitResult, error)

	// GetTransactionHistory returns the account's most recent transactions,
	// newest first. A zero limit selects the configured default; negative
	// limits are rejected.
	GetTransactionHistory(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error)
}
