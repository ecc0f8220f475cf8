package services

import (
	"context"
	"errors"
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

type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates the account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account for the user. The opening balance
// defaults to zero and the currency to MYR.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	balance := decimal.Zero
	if req.Balance != nil {
		balance = *req.Balance
	}
	currency := req.CurrencyCode
	if currency == "" {
		currency = "MYR"
	}

	account := domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		AccountType:  req.AccountType,
		Balance:      balance,
		CurrencyCode: currency,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account in repository", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

// GetAccountByID retrieves an account and enforces ownership.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return account, nil
}

// ListAccounts retrieves a paginated list of the user's active accounts.
func (s *accountService) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccounts(ctx, userID, limit, offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()), slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount updates name and type of an existing account.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.GetAccountByID(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.AccountType != nil {
		if !domain.ValidAccountType(*req.AccountType) {
			return nil, apperrors.ErrValidation
		}
		account.AccountType = *req.AccountType
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks an account as inactive. The account's transactions
// stay untouched.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetAccountByID(ctx, accountID, userID); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
