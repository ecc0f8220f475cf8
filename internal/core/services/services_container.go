package services

import (
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, extractor portssvc.ReceiptExtractor) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, cfg.AuthTimeout)
	container.Account = NewAccountService(repos.AccountRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.CategoryRepo)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.CategoryRepo, repos.ReportingRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)
	container.Receipt = NewReceiptService(extractor, repos.CategoryRepo)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.CategorySvcFacade    = (*categoryService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.BudgetSvcFacade      = (*budgetService)(nil)
	_ portssvc.UserSvcFacade        = (*userService)(nil)
	_ portssvc.ReceiptSvcFacade     = (*receiptService)(nil)
	_ portssvc.ReportingService     = (*reportingService)(nil)
	_ portssvc.TokenSvcFacade       = (*tokenService)(nil)
)
