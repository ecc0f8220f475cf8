package services

import (
	"context"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	"github.com/dompetku/dompetku_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction by its unique identifier.
	GetTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated, filtered list of the user's transactions.
	ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter, limit int, offset int) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateTransaction persists a new transaction and adjusts the linked
	// account balance atomically.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// UpdateTransaction updates an existing transaction's mutable fields.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
