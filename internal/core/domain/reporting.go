package domain

import (
	"github.com/shopspring/decimal"
)

// CategoryAmount represents one category's share of a summary period.
type CategoryAmount struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	CategoryType CategoryType    `json:"categoryType"`
	Total        decimal.Decimal `json:"total"`
}

// Summary is the aggregation over a user's transactions in a date range.
// Balance = TotalIncome - TotalExpense. Transfers do not contribute to either
// side. Values are exact decimals; two-decimal display rounding is left to
// callers.
type Summary struct {
	TotalIncome   decimal.Decimal  `json:"totalIncome"`
	TotalExpense  decimal.Decimal  `json:"totalExpense"`
	Balance       decimal.Decimal  `json:"balance"`
	CategoryStats []CategoryAmount `json:"categoryStats"`
}
