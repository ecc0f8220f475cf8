package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	"github.com/dompetku/dompetku_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// Helper to convert domain.Account to models.Account for DB storage
func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:    d.AccountID,
		UserID:       d.UserID,
		Name:         d.Name,
		AccountType:  models.AccountType(d.AccountType),
		Balance:      d.Balance,
		CurrencyCode: d.CurrencyCode,
		IsActive:     d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.Account from DB to domain.Account
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		UserID:       m.UserID,
		Name:         m.Name,
		AccountType:  domain.AccountType(m.AccountType),
		Balance:      m.Balance,
		CurrencyCode: m.CurrencyCode,
		IsActive:     m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.UserID,
		&m.Name,
		&m.AccountType,
		&m.Balance,
		&m.CurrencyCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const accountColumns = `account_id, user_id, name, account_type, balance, currency_code, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := toModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.UserID,
		modelAcc.Name,
		modelAcc.AccountType,
		modelAcc.Balance,
		modelAcc.CurrencyCode,
		modelAcc.IsActive,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, modelAcc.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves a single account regardless of owner; ownership
// checks live in the service layer.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1;
	`
	modelAcc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	domainAcc := toDomainAccount(modelAcc)
	return &domainAcc, nil
}

// ListAccounts returns a user's active accounts, newest first.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		modelAcc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, toDomainAccount(modelAcc))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", rows.Err())
	}

	return accounts, nil
}

// UpdateAccount persists changed account details.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	modelAcc := toModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $1, account_type = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $5 AND user_id = $6 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelAcc.Name,
		modelAcc.AccountType,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
		modelAcc.AccountID,
		modelAcc.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", modelAcc.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("account not found or inactive: %w", apperrors.ErrNotFound)
	}
	return nil
}

// DeactivateAccount soft-deletes an account. The row stays so existing
// transactions keep a valid reference.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE account_id = $3 AND user_id = $2 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, now, userID, accountID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("account not found or already inactive: %w", apperrors.ErrNotFound)
	}
	return nil
}

// AdjustAccountBalanceInTx applies a signed delta inside the caller's
// database transaction so the balance commits atomically with the
// transaction row that caused it.
func (r *PgxAccountRepository) AdjustAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = balance + $1, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $4 AND user_id = $3 AND is_active = TRUE;
	`
	cmdTag, err := tx.Exec(ctx, query, delta, now, userID, accountID)
	if err != nil {
		return fmt.Errorf("failed to adjust balance of account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("account not found or inactive: %w", apperrors.ErrNotFound)
	}
	return nil
}
