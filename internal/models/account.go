package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType at the storage layer.
type AccountType string

// Account represents a row in the accounts table.
type Account struct {
	AccountID    string          `db:"account_id"`
	UserID       string          `db:"user_id"`
	Name         string          `db:"name"`
	AccountType  AccountType     `db:"account_type"`
	Balance      decimal.Decimal `db:"balance"`
	CurrencyCode string          `db:"currency_code"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}
