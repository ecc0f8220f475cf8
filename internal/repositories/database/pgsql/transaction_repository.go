package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	"github.com/dompetku/dompetku_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		UserID:        d.UserID,
		AccountID:     d.AccountID,
		CategoryID:    d.CategoryID,
		Amount:        d.Amount,
		Type:          models.TransactionType(d.Type),
		Description:   sql.NullString{String: d.Description, Valid: d.Description != ""},
		Date:          d.Date,
		Person:        sql.NullString{String: d.Person, Valid: d.Person != ""},
		ReceiptImage:  sql.NullString{String: d.ReceiptImage, Valid: d.ReceiptImage != ""},
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		AccountID:     m.AccountID,
		CategoryID:    m.CategoryID,
		Amount:        m.Amount,
		Type:          domain.TransactionType(m.Type),
		Description:   m.Description.String,
		Date:          m.Date,
		Person:        m.Person.String,
		ReceiptImage:  m.ReceiptImage.String,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.AccountID,
		&m.CategoryID,
		&m.Amount,
		&m.Type,
		&m.Description,
		&m.Date,
		&m.Person,
		&m.ReceiptImage,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const transactionColumns = `transaction_id, user_id, account_id, category_id, amount, transaction_type,
	description, transaction_date, person, receipt_image,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveTransactionInTx inserts the transaction row inside the caller's
// database transaction so it commits atomically with the balance adjustment.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	modelTxn := toModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.UserID,
		modelTxn.AccountID,
		modelTxn.CategoryID,
		modelTxn.Amount,
		modelTxn.Type,
		modelTxn.Description,
		modelTxn.Date,
		modelTxn.Person,
		modelTxn.ReceiptImage,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, modelTxn.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", modelTxn.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1;
	`
	modelTxn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	domainTxn := toDomainTransaction(modelTxn)
	return &domainTxn, nil
}

// ListTransactions returns a page of a user's transactions, newest effective
// date first. Filter bounds on the date are inclusive.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter, limit int, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1`
	args := []any{userID}

	addCond := func(clause string, value any) {
		args = append(args, value)
		query += ` AND ` + clause + `$` + strconv.Itoa(len(args))
	}
	if filter.AccountID != "" {
		addCond("account_id = ", filter.AccountID)
	}
	if filter.CategoryID != "" {
		addCond("category_id = ", filter.CategoryID)
	}
	if filter.Type != nil {
		addCond("transaction_type = ", string(*filter.Type))
	}
	if filter.FromDate != nil {
		addCond("transaction_date >= ", *filter.FromDate)
	}
	if filter.ToDate != nil {
		addCond("transaction_date <= ", *filter.ToDate)
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(`
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $%d OFFSET $%d;`, len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		modelTxn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, toDomainTransaction(modelTxn))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	return txns, nil
}

// UpdateTransaction persists the mutable fields of a transaction. Amount,
// type and account are immutable once recorded, so they are not part of the
// SET list.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	modelTxn := toModelTransaction(txn)
	query := `
		UPDATE transactions
		SET category_id = $1, description = $2, transaction_date = $3, person = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE transaction_id = $7 AND user_id = $8;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelTxn.CategoryID,
		modelTxn.Description,
		modelTxn.Date,
		modelTxn.Person,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
		modelTxn.TransactionID,
		modelTxn.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", modelTxn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
