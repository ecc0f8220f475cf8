package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType gives a transaction its signed role in aggregation.
type TransactionType string

const (
	Income   TransactionType = "income"
	Expense  TransactionType = "expense"
	Transfer TransactionType = "transfer"
)

// ValidTransactionType reports whether t is one of the declared types.
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

// Transaction represents a single money movement. It belongs to exactly one
// user, one account and one category; the amount is always positive and the
// type carries the sign. Transactions are never physically deleted.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	UserID        string          `json:"userID"`
	AccountID     string          `json:"accountID"`
	CategoryID    string          `json:"categoryID"`
	Amount        decimal.Decimal `json:"amount"`
	Type          TransactionType `json:"type"`
	Description   string          `json:"description,omitempty"`
	Date          time.Time       `json:"date"`
	Person        string          `json:"person,omitempty"`
	ReceiptImage  string          `json:"receiptImage,omitempty"`
	AuditFields
}

// Validate checks the intrinsic invariants of a transaction. Ownership and
// active-flag checks against the referenced account/category need storage
// access and live in the service layer.
func (t Transaction) Validate() error {
	if !ValidTransactionType(t.Type) {
		return fmt.Errorf("unknown transaction type %q", t.Type)
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("transaction amount must be positive")
	}
	if t.AccountID == "" {
		return fmt.Errorf("transaction account is required")
	}
	if t.CategoryID == "" {
		return fmt.Errorf("transaction category is required")
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction date is required")
	}
	return nil
}
