package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod mirrors domain.BudgetPeriod at the storage layer.
type BudgetPeriod string

// Budget represents a row in the budgets table.
type Budget struct {
	BudgetID   string          `db:"budget_id"`
	UserID     string          `db:"user_id"`
	CategoryID sql.NullString  `db:"category_id"`
	Name       string          `db:"name"`
	Amount     decimal.Decimal `db:"amount"`
	Period     BudgetPeriod    `db:"period"`
	StartDate  time.Time       `db:"start_date"`
	EndDate    time.Time       `db:"end_date"`
	IsActive   bool            `db:"is_active"`
	AuditFields
}
