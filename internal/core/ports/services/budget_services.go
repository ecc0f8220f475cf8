package services

import (
	"context"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/dompetku/dompetku_backend/internal/dto"
)

// BudgetReaderSvc defines read operations for budget data
type BudgetReaderSvc interface {
	// GetBudgetByID retrieves a specific budget by its unique identifier.
	GetBudgetByID(ctx context.Context, budgetID string, userID string) (*domain.Budget, error)

	// ListBudgets retrieves the user's active budgets with spent amounts populated.
	ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error)
}

// BudgetWriterSvc defines write operations for budget data
type BudgetWriterSvc interface {
	// CreateBudget persists a new budget.
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error)

	// UpdateBudget updates an existing budget's details.
	UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error)

	// DeactivateBudget marks a budget as inactive.
	DeactivateBudget(ctx context.Context, budgetID string, userID string) error
}

// BudgetSvcFacade combines all budget-related service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
