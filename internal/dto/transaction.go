package dto

import (
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	AccountID    string                 `json:"accountID" binding:"required"`
	CategoryID   string                 `json:"categoryID" binding:"required"`
	Amount       decimal.Decimal        `json:"amount" binding:"required,dgt0"`
	Type         domain.TransactionType `json:"type" binding:"required,oneof=income expense transfer"`
	Description  string                 `json:"description"`
	Date         time.Time              `json:"date" binding:"required" time_format:"2006-01-02"`
	Person       string                 `json:"person"`
	ReceiptImage string                 `json:"receiptImage"`
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTransactionRequest struct {
	CategoryID  *string    `json:"categoryID"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date" time_format:"2006-01-02"`
	Person      *string    `json:"person"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	AccountID     string                 `json:"accountID"`
	CategoryID    string                 `json:"categoryID"`
	Amount        decimal.Decimal        `json:"amount"`
	Type          domain.TransactionType `json:"type"`
	Description   string                 `json:"description,omitempty"`
	Date          time.Time              `json:"date"`
	Person        string                 `json:"person,omitempty"`
	ReceiptImage  string                 `json:"receiptImage,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		CategoryID:    txn.CategoryID,
		Amount:        txn.Amount,
		Type:          txn.Type,
		Description:   txn.Description,
		Date:          txn.Date,
		Person:        txn.Person,
		ReceiptImage:  txn.ReceiptImage,
		CreatedAt:     txn.CreatedAt,
		LastUpdatedAt: txn.LastUpdatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to a slice of TransactionResponse DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return res
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit      int        `form:"limit,default=50"`
	Offset     int        `form:"offset,default=0"`
	AccountID  string     `form:"accountID"`
	CategoryID string     `form:"categoryID"`
	Type       string     `form:"type" binding:"omitempty,oneof=income expense transfer"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
