package mapping

import (
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/domain"
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		SenderID:      d.SenderID,
		ReceiverID:    d.ReceiverID,
		CampaignID:    d.CampaignID,
		Type:          models.TransactionType(d.Type),
		Amount:        d.Amount,
		BalanceBefore: d.BalanceBefore,
		BalanceAfter:  d.BalanceAfter,
		Status:        models.TransactionStatus(d.Status),
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		SenderID:      m.SenderID,
		ReceiverID:    m.ReceiverID,
		CampaignID:    m.CampaignID,
		Type:          domain.TransactionType(m.Type),
		Amount:        m.Amount,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Status:        domain.TransactionStatus(m.Status),
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
