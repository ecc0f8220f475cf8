package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType at the storage layer.
type TransactionType string

// Transaction represents a row in the transactions table.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	AccountID     string          `db:"account_id"`
	CategoryID    string          `db:"category_id"`
	Amount        decimal.Decimal `db:"amount"`
	Type          TransactionType `db:"transaction_type"`
	Description   sql.NullString  `db:"description"`
	Date          time.Time       `db:"transaction_date"`
	Person        sql.NullString  `db:"person"`
	ReceiptImage  sql.NullString  `db:"receipt_image"`
	AuditFields
}
