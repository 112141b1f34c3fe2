package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/apperrors"
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/domain"
	portsrepo "github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/ports/repositories"
	portssvc "github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/ports/services"
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/dto"
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/middleware"
)

// accountService provides account provisioning and lookup. Balances are
// never mutated here; all movement goes through the ledger service.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount provisions a new account with a zero balance.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID: req.AccountID,
		Name:      req.Name,
		Role:      req.Role,
		Balance:   decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("account_id", req.AccountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("role", string(account.Role)))
	return &account, nil
}

// GetAccountByID retrieves a specific account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", apperrors.ErrValidation)
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}
