package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type budgetService struct {
	budgetRepo    portsrepo.BudgetRepositoryFacade
	categoryRepo  portsrepo.CategoryReader
	reportingRepo portsrepo.ReportingRepository
}

// NewBudgetService creates the budget service. Spent amounts are derived
// from the reporting repository when budgets are read.
func NewBudgetService(
	budgetRepo portsrepo.BudgetRepositoryFacade,
	categoryRepo portsrepo.CategoryReader,
	reportingRepo portsrepo.ReportingRepository,
) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo:    budgetRepo,
		categoryRepo:  categoryRepo,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// periodEnd derives the end of a budget window from its start and period.
func periodEnd(start time.Time, period domain.BudgetPeriod) time.Time {
	switch period {
	case domain.BudgetWeekly:
		return start.AddDate(0, 0, 7)
	case domain.BudgetMonthly:
		return start.AddDate(0, 1, 0)
	case domain.BudgetYearly:
		return start.AddDate(1, 0, 0)
	}
	return start
}

// CreateBudget persists a new budget. When no end date is given it is
// derived from the period.
func (s *budgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	categoryID := ""
	if req.CategoryID != nil && *req.CategoryID != "" {
		category, err := s.categoryRepo.FindCategoryByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category.UserID != userID || !category.IsActive {
			return nil, apperrors.ErrValidation
		}
		categoryID = category.CategoryID
	}

	endDate := periodEnd(req.StartDate, req.Period)
	if req.EndDate != nil {
		endDate = *req.EndDate
	}
	if !endDate.After(req.StartDate) {
		return nil, apperrors.ErrValidation
	}

	budget := domain.Budget{
		BudgetID:   uuid.NewString(),
		UserID:     userID,
		CategoryID: categoryID,
		Name:       req.Name,
		Amount:     req.Amount,
		Period:     req.Period,
		StartDate:  req.StartDate,
		EndDate:    endDate,
		Spent:      decimal.Zero,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		logger.Error("Failed to save budget", slog.String("error", err.Error()), slog.String("budget_id", budget.BudgetID))
		return nil, err
	}

	logger.Info("Budget created", slog.String("budget_id", budget.BudgetID))
	return &budget, nil
}

// GetBudgetByID retrieves a budget with its spent amount populated.
func (s *budgetService) GetBudgetByID(ctx context.Context, budgetID string, userID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find budget by ID", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		}
		return nil, err
	}

	if err := s.populateSpent(ctx, userID, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// ListBudgets retrieves the user's active budgets with spent amounts.
func (s *budgetService) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budgets, err := s.budgetRepo.ListBudgets(ctx, userID)
	if err != nil {
		logger.Error("Failed to list budgets", slog.String("error", err.Error()))
		return nil, err
	}

	for i := range budgets {
		if err := s.populateSpent(ctx, userID, &budgets[i]); err != nil {
			return nil, err
		}
	}
	if budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}

// populateSpent fills in the expense total for the budget's window. Budgets
// without a category sum all expense categories.
func (s *budgetService) populateSpent(ctx context.Context, userID string, budget *domain.Budget) error {
	stats, err := s.reportingRepo.GetExpenseByCategory(ctx, userID, &budget.StartDate, &budget.EndDate)
	if err != nil {
		return err
	}

	spent := decimal.Zero
	for _, stat := range stats {
		if budget.CategoryID == "" || stat.CategoryID == budget.CategoryID {
			spent = spent.Add(stat.Total)
		}
	}
	budget.Spent = spent
	return nil
}

// UpdateBudget updates an existing budget's details.
func (s *budgetService) UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		budget.Name = *req.Name
	}
	if req.Amount != nil {
		budget.Amount = *req.Amount
	}
	if req.Period != nil {
		if !domain.ValidBudgetPeriod(*req.Period) {
			return nil, apperrors.ErrValidation
		}
		budget.Period = *req.Period
		budget.EndDate = periodEnd(budget.StartDate, budget.Period)
	}
	if req.EndDate != nil {
		budget.EndDate = *req.EndDate
	}
	if !budget.EndDate.After(budget.StartDate) {
		return nil, apperrors.ErrValidation
	}
	budget.LastUpdatedAt = time.Now()
	budget.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		logger.Error("Failed to update budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return nil, err
	}

	if err := s.populateSpent(ctx, userID, budget); err != nil {
		return nil, err
	}

	logger.Info("Budget updated", slog.String("budget_id", budgetID))
	return budget, nil
}

// DeactivateBudget marks a budget as inactive.
func (s *budgetService) DeactivateBudget(ctx context.Context, budgetID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.budgetRepo.DeactivateBudget(ctx, budgetID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to deactivate budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		}
		return err
	}

	logger.Info("Budget deactivated", slog.String("budget_id", budgetID))
	return nil
}
