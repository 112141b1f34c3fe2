package services

import (
	"context"

	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/domain"
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/dto"
)

// AccountSvcFacade exposes account provisioning and lookup.
type AccountSvcFacade interface {
	// CreateAccount provisions a new balance-holding account with a zero
	// balance. Funding happens through the ledger afterwards.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error)

	// GetAccountByID retrieves a specific account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
}
