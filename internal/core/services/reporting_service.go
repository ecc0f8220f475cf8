package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/middleware"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: repo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// GetSummary computes income/expense totals and the per-category expense
// breakdown for the user. The repository applies the inclusive date-range
// filter in SQL, so out-of-range rows never reach this layer. Transfers
// contribute to neither side. An empty range yields zero totals and an empty
// breakdown, not an error.
func (s *reportingService) GetSummary(ctx context.Context, userID string, from, to *time.Time) (*domain.Summary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	income, expense, err := s.reportingRepo.GetIncomeExpenseTotals(ctx, userID, from, to)
	if err != nil {
		logger.Error("Failed to get income/expense totals", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get summary totals: %w", err)
	}

	categoryStats, err := s.reportingRepo.GetExpenseByCategory(ctx, userID, from, to)
	if err != nil {
		logger.Error("Failed to get category breakdown", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get category breakdown: %w", err)
	}
	if categoryStats == nil {
		categoryStats = []domain.CategoryAmount{}
	}

	summary := &domain.Summary{
		TotalIncome:   income,
		TotalExpense:  expense,
		Balance:       income.Sub(expense),
		CategoryStats: categoryStats,
	}

	logger.Debug("Summary computed",
		slog.String("total_income", summary.TotalIncome.String()),
		slog.String("total_expense", summary.TotalExpense.String()),
		slog.Int("category_count", len(categoryStats)))

	return summary, nil
}
