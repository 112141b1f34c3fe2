package services

import (
	portsrepo "github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/ports/repositories"
	portssvc "github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/ports/services"
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Ledger = NewLedgerService(
		repos.LedgerRepo,
		repos.AccountRepo,
		WithMaxConflictRetries(cfg.LedgerMaxConflictRetries),
		WithHistoryDefaultLimit(cfg.HistoryDefaultLimit),
		WithFailureBalanceSnapshot(cfg.FailureRecordsSnapshotBalances),
	)

	return container
}
