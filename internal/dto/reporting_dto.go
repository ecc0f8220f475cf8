package dto

import (
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryParams defines query parameters for the summary report.
// Both bounds are optional and inclusive.
type SummaryParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// CategoryStatResponse represents one category's contribution in a summary.
type CategoryStatResponse struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	CategoryType string          `json:"categoryType"`
	Total        decimal.Decimal `json:"total"`
}

// SummaryResponse represents the income/expense summary report response
type SummaryResponse struct {
	FromDate      string                 `json:"fromDate,omitempty"`
	ToDate        string                 `json:"toDate,omitempty"`
	TotalIncome   decimal.Decimal        `json:"totalIncome"`
	TotalExpense  decimal.Decimal        `json:"totalExpense"`
	Balance       decimal.Decimal        `json:"balance"`
	CategoryStats []CategoryStatResponse `json:"categoryStats"`
}

// ToSummaryResponse converts a domain summary to a DTO response
func ToSummaryResponse(summary *domain.Summary, from, to *time.Time) SummaryResponse {
	response := SummaryResponse{
		TotalIncome:   summary.TotalIncome,
		TotalExpense:  summary.TotalExpense,
		Balance:       summary.Balance,
		CategoryStats: make([]CategoryStatResponse, len(summary.CategoryStats)),
	}
	if from != nil {
		response.FromDate = from.Format("2006-01-02")
	}
	if to != nil {
		response.ToDate = to.Format("2006-01-02")
	}
	for i, stat := range summary.CategoryStats {
		response.CategoryStats[i] = CategoryStatResponse{
			CategoryID:   stat.CategoryID,
			CategoryName: stat.CategoryName,
			CategoryType: string(stat.CategoryType),
			Total:        stat.Total,
		}
	}
	return response
}
