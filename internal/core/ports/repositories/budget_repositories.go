package repositories

import (
	"context"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
)

// BudgetReader defines read operations for budget data
type BudgetReader interface {
	// FindBudgetByID retrieves a specific budget by its ID.
	FindBudgetByID(ctx context.Context, budgetID string, userID string) (*domain.Budget, error)

	// ListBudgets retrieves all active budgets for a user.
	ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budget data
type BudgetWriter interface {
	// SaveBudget persists a new budget.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudget updates an existing budget's details.
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// DeactivateBudget marks a budget as inactive (soft delete).
	DeactivateBudget(ctx context.Context, budgetID string, userID string, now time.Time) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
