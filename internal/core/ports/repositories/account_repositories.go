package repositories

import (
	"context"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the active accounts of a user, newest first.
	ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive (soft delete).
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountBalanceSupport defines operations that maintain running balances.
type AccountBalanceSupport interface {
	// AdjustAccountBalanceInTx applies a signed delta to an account's balance
	// within a database transaction.
	AdjustAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceSupport
	TransactionManager
}
