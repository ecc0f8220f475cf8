package repositories

import (
	"context"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionFilter narrows a transaction listing. Zero values mean "no
// filter". FromDate/ToDate bound the effective date inclusively.
type TransactionFilter struct {
	AccountID  string
	CategoryID string
	Type       *domain.TransactionType
	FromDate   *time.Time
	ToDate     *time.Time
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a user's transactions matching the filter,
	// ordered by effective date descending, capped at limit.
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter, limit int, offset int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data.
// Transactions are never deleted; updates go through explicit SaveTransaction
// / UpdateTransaction calls only.
type TransactionWriter interface {
	// SaveTransactionInTx persists a new transaction within a database transaction
	// so the account balance adjustment commits atomically with it.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// UpdateTransaction updates an existing transaction's mutable fields.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionManager
}
