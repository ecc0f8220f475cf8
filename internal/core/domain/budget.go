package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod identifies the recurrence window of a budget.
type BudgetPeriod string

const (
	BudgetWeekly  BudgetPeriod = "weekly"
	BudgetMonthly BudgetPeriod = "monthly"
	BudgetYearly  BudgetPeriod = "yearly"
)

// ValidBudgetPeriod reports whether p is one of the declared periods.
func ValidBudgetPeriod(p BudgetPeriod) bool {
	switch p {
	case BudgetWeekly, BudgetMonthly, BudgetYearly:
		return true
	}
	return false
}

// Budget represents a spending cap over a period, optionally scoped to one
// category. Spent is derived from expense transactions inside the budget
// window when budgets are read, never stored.
type Budget struct {
	BudgetID   string          `json:"budgetID"`
	UserID     string          `json:"userID"`
	CategoryID string          `json:"categoryID,omitempty"` // empty = all categories
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Period     BudgetPeriod    `json:"period"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    time.Time       `json:"endDate"`
	Spent      decimal.Decimal `json:"spent"`
	IsActive   bool            `json:"isActive"`
	AuditFields
}
