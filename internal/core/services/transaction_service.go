package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
	categoryRepo    portsrepo.CategoryReader
}

// NewTransactionService creates the transaction service.
func NewTransactionService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	categoryRepo portsrepo.CategoryReader,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// balanceDelta converts a transaction into the signed amount it applies to
// its account balance. Transfers leave the balance untouched here; moving
// money between own accounts is modelled as an expense/income pair by the
// frontend.
func balanceDelta(txnType domain.TransactionType, amount decimal.Decimal) decimal.Decimal {
	switch txnType {
	case domain.Income:
		return amount
	case domain.Expense:
		return amount.Neg()
	}
	return decimal.Zero
}

// CreateTransaction validates the referenced account and category, then
// writes the transaction and the account balance adjustment in one database
// transaction.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		AccountID:     req.AccountID,
		CategoryID:    req.CategoryID,
		Amount:        req.Amount,
		Type:          req.Type,
		Description:   req.Description,
		Date:          req.Date,
		Person:        req.Person,
		ReceiptImage:  req.ReceiptImage,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, txn.AccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID || !account.IsActive {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrValidation, txn.AccountID)
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, txn.CategoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID || !category.IsActive {
		return nil, fmt.Errorf("%w: category %s", apperrors.ErrValidation, txn.CategoryID)
	}

	tx, err := s.transactionRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = s.transactionRepo.Rollback(ctx, tx)
	}()

	if err := s.transactionRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	if delta := balanceDelta(txn.Type, txn.Amount); !delta.IsZero() {
		if err := s.accountRepo.AdjustAccountBalanceInTx(ctx, tx, txn.AccountID, delta, userID, now); err != nil {
			logger.Error("Failed to adjust account balance", slog.String("error", err.Error()), slog.String("account_id", txn.AccountID))
			return nil, err
		}
	}

	if err := s.transactionRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

// GetTransactionByID retrieves a transaction and enforces ownership.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction by ID", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if txn.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return txn, nil
}

// ListTransactions retrieves a paginated, filtered list of the user's
// transactions, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter, limit int, offset int) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txns, err := s.transactionRepo.ListTransactions(ctx, userID, filter, limit, offset)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, err
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// UpdateTransaction changes the mutable fields of a transaction. Amount,
// type and account are immutable after creation; correcting those means
// recording a compensating transaction, which keeps balances consistent.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.GetTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		category, err := s.categoryRepo.FindCategoryByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category.UserID != userID || !category.IsActive {
			return nil, fmt.Errorf("%w: category %s", apperrors.ErrValidation, *req.CategoryID)
		}
		txn.CategoryID = *req.CategoryID
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Date != nil {
		txn.Date = *req.Date
	}
	if req.Person != nil {
		txn.Person = *req.Person
	}
	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = userID

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn); err != nil {
		logger.Error("Failed to update transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, err
	}

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID))
	return txn, nil
}
