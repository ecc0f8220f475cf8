package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	"github.com/dompetku/dompetku_backend/internal/core/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter, limit int, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) AdjustAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, accountID, delta, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	txnRepo      *MockTransactionRepository
	accountRepo  *MockAccountRepository
	categoryRepo *MockCategoryReader
	userID       string
	ctx          context.Context
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.txnRepo = new(MockTransactionRepository)
	s.accountRepo = new(MockAccountRepository)
	s.categoryRepo = new(MockCategoryReader)
	s.userID = uuid.NewString()
	s.ctx = context.Background()
}

func (s *TransactionServiceTestSuite) ownedAccount(active bool) *domain.Account {
	return &domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      s.userID,
		Name:        "Maybank",
		AccountType: domain.AccountMaybank2u,
		Balance:     decimal.NewFromInt(500),
		IsActive:    active,
	}
}

func (s *TransactionServiceTestSuite) ownedCategory(active bool) *domain.Category {
	return &domain.Category{
		CategoryID:   uuid.NewString(),
		UserID:       s.userID,
		Name:         "Food & Dining",
		CategoryType: domain.CategoryExpense,
		IsActive:     active,
	}
}

func (s *TransactionServiceTestSuite) createRequest(account *domain.Account, category *domain.Category, txnType domain.TransactionType) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		AccountID:  account.AccountID,
		CategoryID: category.CategoryID,
		Amount:     decimal.NewFromFloat(25.90),
		Type:       txnType,
		Date:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *TransactionServiceTestSuite) TestCreateExpenseAdjustsBalanceAtomically() {
	svc := services.NewTransactionService(s.txnRepo, s.accountRepo, s.categoryRepo)
	account := s.ownedAccount(true)
	category := s.ownedCategory(true)

	s.accountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(account, nil)
	s.categoryRepo.On("FindCategoryByID", mock.Anything, category.CategoryID).Return(category, nil)
	s.txnRepo.On("Begin", mock.Anything).Return(nil, nil)
	s.txnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.accountRepo.On("AdjustAccountBalanceInTx", mock.Anything, mock.Anything, account.AccountID,
		decimal.NewFromFloat(25.90).Neg(), s.userID, mock.Anything).Return(nil)
	s.txnRepo.On("Commit", mock.Anything, mock.Anything).Return(nil)
	s.txnRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)

	txn, err := svc.CreateTransaction(s.ctx, s.createRequest(account, category, domain.Expense), s.userID)

	s.Require().NoError(err)
	s.Equal(s.userID, txn.UserID)
	s.True(txn.Amount.Equal(decimal.NewFromFloat(25.90)))
	s.accountRepo.AssertCalled(s.T(), "AdjustAccountBalanceInTx", mock.Anything, mock.Anything,
		account.AccountID, decimal.NewFromFloat(25.90).Neg(), s.userID, mock.Anything)
	s.txnRepo.AssertCalled(s.T(), "Commit", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateIncomeCreditsBalance() {
	svc := services.NewTransactionService(s.txnRepo, s.accountRepo, s.categoryRepo)
	account := s.ownedAccount(true)
	category := s.ownedCategory(true)

	s.accountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(account, nil)
	s.categoryRepo.On("FindCategoryByID", mock.Anything, category.CategoryID).Return(category, nil)
	s.txnRepo.On("Begin", mock.Anything).Return(nil, nil)
	s.txnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.accountRepo.On("AdjustAccountBalanceInTx", mock.Anything, mock.Anything, account.AccountID,
		decimal.NewFromFloat(25.90), s.userID, mock.Anything).Return(nil)
	s.txnRepo.On("Commit", mock.Anything, mock.Anything).Return(nil)
	s.txnRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.CreateTransaction(s.ctx, s.createRequest(account, category, domain.Income), s.userID)

	s.Require().NoError(err)
	s.accountRepo.AssertCalled(s.T(), "AdjustAccountBalanceInTx", mock.Anything, mock.Anything,
		account.AccountID, decimal.NewFromFloat(25.90), s.userID, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateRejectsInactiveAccount() {
	svc := services.NewTransactionService(s.txnRepo, s.accountRepo, s.categoryRepo)
	account := s.ownedAccount(false)
	category := s.ownedCategory(true)

	s.accountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(account, nil)

	_, err := svc.CreateTransaction(s.ctx, s.createRequest(account, category, domain.Expense), s.userID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.txnRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateRejectsForeignCategory() {
	svc := services.NewTransactionService(s.txnRepo, s.accountRepo, s.categoryRepo)
	account := s.ownedAccount(true)
	category := s.ownedCategory(true)
	category.UserID = uuid.NewString() // someone else's

	s.accountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(account, nil)
	s.categoryRepo.On("FindCategoryByID", mock.Anything, category.CategoryID).Return(category, nil)

	_, err := svc.CreateTransaction(s.ctx, s.createRequest(account, category, domain.Expense), s.userID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.txnRepo.AssertNotCalled(s.T(), "SaveTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateRejectsNonPositiveAmount() {
	svc := services.NewTransactionService(s.txnRepo, s.accountRepo, s.categoryRepo)
	account := s.ownedAccount(true)
	category := s.ownedCategory(true)

	req := s.createRequest(account, category, domain.Expense)
	req.Amount = decimal.Zero

	_, err := svc.CreateTransaction(s.ctx, req, s.userID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.accountRepo.AssertNotCalled(s.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateTransferSkipsBalanceAdjustment() {
	svc := services.NewTransactionService(s.txnRepo, s.accountRepo, s.categoryRepo)
	account := s.ownedAccount(true)
	category := s.ownedCategory(true)

	s.accountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(account, nil)
	s.categoryRepo.On("FindCategoryByID", mock.Anything, category.CategoryID).Return(category, nil)
	s.txnRepo.On("Begin", mock.Anything).Return(nil, nil)
	s.txnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.txnRepo.On("Commit", mock.Anything, mock.Anything).Return(nil)
	s.txnRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.CreateTransaction(s.ctx, s.createRequest(account, category, domain.Transfer), s.userID)

	s.Require().NoError(err)
	s.accountRepo.AssertNotCalled(s.T(), "AdjustAccountBalanceInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestGetRejectsForeignTransaction() {
	svc := services.NewTransactionService(s.txnRepo, s.accountRepo, s.categoryRepo)
	foreign := &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        uuid.NewString(),
	}

	s.txnRepo.On("FindTransactionByID", mock.Anything, foreign.TransactionID).Return(foreign, nil)

	_, err := svc.GetTransactionByID(s.ctx, foreign.TransactionID, s.userID)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (s *TransactionServiceTestSuite) TestListPassesFilterThrough() {
	svc := services.NewTransactionService(s.txnRepo, s.accountRepo, s.categoryRepo)
	expense := domain.Expense
	filter := portsrepo.TransactionFilter{Type: &expense}

	s.txnRepo.On("ListTransactions", mock.Anything, s.userID, filter, 50, 0).
		Return([]domain.Transaction{}, nil)

	txns, err := svc.ListTransactions(s.ctx, s.userID, filter, 50, 0)

	s.Require().NoError(err)
	s.NotNil(txns)
	s.txnRepo.AssertExpectations(s.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
