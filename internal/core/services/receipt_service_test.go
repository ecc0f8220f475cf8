package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/dompetku/dompetku_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReceiptExtractor ---
type MockReceiptExtractor struct {
	mock.Mock
}

func (m *MockReceiptExtractor) AnalyzeReceipt(ctx context.Context, data []byte, mimeType string) (string, error) {
	args := m.Called(ctx, data, mimeType)
	return args.String(0), args.Error(1)
}

// --- Mock CategoryReader ---
type MockCategoryReader struct {
	mock.Mock
}

func (m *MockCategoryReader) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryReader) ListCategories(ctx context.Context, userID string, categoryType *domain.CategoryType) ([]domain.Category, error) {
	args := m.Called(ctx, userID, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func expenseCategory(name string) domain.Category {
	return domain.Category{
		CategoryID:   uuid.NewString(),
		Name:         name,
		CategoryType: domain.CategoryExpense,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     time.Now(),
			LastUpdatedAt: time.Now(),
		},
	}
}

type ScanReceiptSuite struct {
	suite.Suite
	extractor    *MockReceiptExtractor
	categoryRepo *MockCategoryReader
	userID       string
	ctx          context.Context
}

func (s *ScanReceiptSuite) SetupTest() {
	s.extractor = new(MockReceiptExtractor)
	s.categoryRepo = new(MockCategoryReader)
	s.userID = uuid.NewString()
	s.ctx = context.Background()
}

func (s *ScanReceiptSuite) TestMatchesCategoryBidirectionally() {
	svc := services.NewReceiptService(s.extractor, s.categoryRepo)
	foodCategory := expenseCategory("Food & Dining")
	completion := `{"merchant":"KFC Kuala Lumpur","date":"2025-03-01","total":25.90,"category":"food","currency":"MYR"}`

	s.extractor.On("AnalyzeReceipt", mock.Anything, mock.Anything, "image/jpeg").Return(completion, nil)
	s.categoryRepo.On("ListCategories", mock.Anything, s.userID, mock.Anything).
		Return([]domain.Category{expenseCategory("Transport"), foodCategory}, nil)

	resp, err := svc.ScanReceipt(s.ctx, s.userID, []byte("img"), "image/jpeg")

	s.Require().NoError(err)
	s.Equal(foodCategory.CategoryID, resp.CategoryID)
	s.True(resp.Amount.Equal(decimal.RequireFromString("25.90")))
	s.Equal("2025-03-01", resp.Date)
	s.Equal("KFC Kuala Lumpur", resp.Description)
}

func (s *ScanReceiptSuite) TestFallsBackToMerchantCategorizer() {
	svc := services.NewReceiptService(s.extractor, s.categoryRepo)
	transport := expenseCategory("Transport")
	// Model returns no category tag; merchant keywords must fill it in.
	completion := `{"merchant":"Grab to KLCC","date":"2025-03-01","total":18.00}`

	s.extractor.On("AnalyzeReceipt", mock.Anything, mock.Anything, "image/jpeg").Return(completion, nil)
	s.categoryRepo.On("ListCategories", mock.Anything, s.userID, mock.Anything).
		Return([]domain.Category{expenseCategory("Food & Dining"), transport}, nil)

	resp, err := svc.ScanReceipt(s.ctx, s.userID, []byte("img"), "image/jpeg")

	s.Require().NoError(err)
	s.Equal(transport.CategoryID, resp.CategoryID)
	s.Equal("transport", resp.Record.Category)
}

func (s *ScanReceiptSuite) TestNoMatchLeavesCategoryEmpty() {
	svc := services.NewReceiptService(s.extractor, s.categoryRepo)
	completion := `{"merchant":"Random Store","date":"2025-03-01","total":5.00}`

	s.extractor.On("AnalyzeReceipt", mock.Anything, mock.Anything, "image/png").Return(completion, nil)
	s.categoryRepo.On("ListCategories", mock.Anything, s.userID, mock.Anything).
		Return([]domain.Category{expenseCategory("Food & Dining")}, nil)

	resp, err := svc.ScanReceipt(s.ctx, s.userID, []byte("img"), "image/png")

	s.Require().NoError(err)
	s.Empty(resp.CategoryID)
	s.Equal("other", resp.Record.Category)
}

func (s *ScanReceiptSuite) TestFirstMatchWinsOnTies() {
	svc := services.NewReceiptService(s.extractor, s.categoryRepo)
	first := expenseCategory("Food Delivery")
	second := expenseCategory("Food & Dining")
	completion := `{"merchant":"KFC","date":"2025-03-01","total":25.90,"category":"food"}`

	s.extractor.On("AnalyzeReceipt", mock.Anything, mock.Anything, "image/jpeg").Return(completion, nil)
	s.categoryRepo.On("ListCategories", mock.Anything, s.userID, mock.Anything).
		Return([]domain.Category{first, second}, nil)

	resp, err := svc.ScanReceipt(s.ctx, s.userID, []byte("img"), "image/jpeg")

	s.Require().NoError(err)
	s.Equal(first.CategoryID, resp.CategoryID)
}

func (s *ScanReceiptSuite) TestExtractorErrorPropagates() {
	svc := services.NewReceiptService(s.extractor, s.categoryRepo)

	s.extractor.On("AnalyzeReceipt", mock.Anything, mock.Anything, "image/gif").
		Return("", apperrors.ErrUnsupportedFile)

	_, err := svc.ScanReceipt(s.ctx, s.userID, []byte("img"), "image/gif")

	s.Require().ErrorIs(err, apperrors.ErrUnsupportedFile)
	s.categoryRepo.AssertNotCalled(s.T(), "ListCategories", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ScanReceiptSuite) TestParseFailurePropagates() {
	svc := services.NewReceiptService(s.extractor, s.categoryRepo)

	s.extractor.On("AnalyzeReceipt", mock.Anything, mock.Anything, "image/jpeg").
		Return("sorry, I cannot read this receipt", nil)

	_, err := svc.ScanReceipt(s.ctx, s.userID, []byte("img"), "image/jpeg")

	s.Require().ErrorIs(err, apperrors.ErrParseFailure)
}

func TestScanReceiptSuite(t *testing.T) {
	suite.Run(t, new(ScanReceiptSuite))
}
