package dto

import (
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for provisioning an account.
type CreateAccountRequest struct {
	AccountID string      `json:"accountID" binding:"required"`
	Name      string      `json:"name" binding:"required"`
	Role      domain.Role `json:"role" binding:"required,oneof=ADMIN RESELLER USER"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Role      domain.Role     `json:"role"`
	Balance   decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain Account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: a.AccountID,
		Name:      a.Name,
		Role:      a.Role,
		Balance:   a.Balance,
	}
}
