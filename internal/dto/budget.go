package dto

import (
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a new budget.
type CreateBudgetRequest struct {
	Name       string              `json:"name" binding:"required,min=1,max=100"`
	CategoryID *string             `json:"categoryID"` // Optional, nil means all spending
	Amount     decimal.Decimal     `json:"amount" binding:"required,dgt0"`
	Period     domain.BudgetPeriod `json:"period" binding:"required,oneof=weekly monthly yearly"`
	StartDate  time.Time           `json:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate    *time.Time          `json:"endDate" time_format:"2006-01-02"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateBudgetRequest struct {
	Name    *string              `json:"name"`
	Amount  *decimal.Decimal     `json:"amount"`
	Period  *domain.BudgetPeriod `json:"period"`
	EndDate *time.Time           `json:"endDate" time_format:"2006-01-02"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID      string              `json:"budgetID"`
	Name          string              `json:"name"`
	CategoryID    string              `json:"categoryID,omitempty"`
	Amount        decimal.Decimal     `json:"amount"`
	Period        domain.BudgetPeriod `json:"period"`
	StartDate     time.Time           `json:"startDate"`
	EndDate       time.Time           `json:"endDate"`
	Spent         decimal.Decimal     `json:"spent"`
	IsActive      bool                `json:"isActive"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

// ToBudgetResponse converts a domain.Budget to BudgetResponse DTO
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:      b.BudgetID,
		Name:          b.Name,
		CategoryID:    b.CategoryID,
		Amount:        b.Amount,
		Period:        b.Period,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		Spent:         b.Spent,
		IsActive:      b.IsActive,
		CreatedAt:     b.CreatedAt,
		LastUpdatedAt: b.LastUpdatedAt,
	}
}

// ToListBudgetResponse converts a slice of domain.Budget to a slice of BudgetResponse DTOs
func ToListBudgetResponse(budgets []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		res[i] = ToBudgetResponse(&b)
	}
	return res
}

// ListBudgetsResponse wraps the list of budgets.
type ListBudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}
