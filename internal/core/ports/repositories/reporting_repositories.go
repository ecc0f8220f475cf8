package repositories

import (
	"context"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetIncomeExpenseTotals retrieves the total income and total expense for a user
	// within the given date range. Nil bounds leave that side of the range open.
	GetIncomeExpenseTotals(ctx context.Context, userID string, from, to *time.Time) (income decimal.Decimal, expense decimal.Decimal, err error)

	// GetExpenseByCategory retrieves per-category expense totals for a user
	// within the given date range.
	GetExpenseByCategory(ctx context.Context, userID string, from, to *time.Time) ([]domain.CategoryAmount, error)
}
