package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/dompetku/dompetku_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetIncomeExpenseTotals(ctx context.Context, userID string, from, to *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) GetExpenseByCategory(ctx context.Context, userID string, from, to *time.Time) ([]domain.CategoryAmount, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryAmount), args.Error(1)
}

func TestGetSummary_BalanceIsIncomeMinusExpense(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)
	userID := uuid.NewString()

	// one income of 100, expenses of 40 and 10
	repo.On("GetIncomeExpenseTotals", mock.Anything, userID, (*time.Time)(nil), (*time.Time)(nil)).
		Return(decimal.NewFromInt(100), decimal.NewFromInt(50), nil)
	repo.On("GetExpenseByCategory", mock.Anything, userID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.CategoryAmount{
			{CategoryID: "c1", CategoryName: "Food & Dining", CategoryType: domain.CategoryExpense, Total: decimal.NewFromInt(40)},
			{CategoryID: "c2", CategoryName: "Transport", CategoryType: domain.CategoryExpense, Total: decimal.NewFromInt(10)},
		}, nil)

	summary, err := svc.GetSummary(context.Background(), userID, nil, nil)

	require.NoError(t, err)
	assert.True(t, summary.TotalIncome.Equal(decimal.NewFromInt(100)))
	assert.True(t, summary.TotalExpense.Equal(decimal.NewFromInt(50)))
	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(50)))
	require.Len(t, summary.CategoryStats, 2)
	assert.Equal(t, "Food & Dining", summary.CategoryStats[0].CategoryName)
}

func TestGetSummary_EmptyRange(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)
	userID := uuid.NewString()

	repo.On("GetIncomeExpenseTotals", mock.Anything, userID, mock.Anything, mock.Anything).
		Return(decimal.Zero, decimal.Zero, nil)
	repo.On("GetExpenseByCategory", mock.Anything, userID, mock.Anything, mock.Anything).
		Return([]domain.CategoryAmount(nil), nil)

	summary, err := svc.GetSummary(context.Background(), userID, nil, nil)

	require.NoError(t, err)
	assert.True(t, summary.TotalIncome.IsZero())
	assert.True(t, summary.TotalExpense.IsZero())
	assert.True(t, summary.Balance.IsZero())
	assert.NotNil(t, summary.CategoryStats)
	assert.Empty(t, summary.CategoryStats)
}

func TestGetSummary_DateRangePassedToRepository(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)
	userID := uuid.NewString()

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	repo.On("GetIncomeExpenseTotals", mock.Anything, userID, &from, &to).
		Return(decimal.NewFromInt(10), decimal.Zero, nil)
	repo.On("GetExpenseByCategory", mock.Anything, userID, &from, &to).
		Return([]domain.CategoryAmount{}, nil)

	_, err := svc.GetSummary(context.Background(), userID, &from, &to)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetSummary_RepositoryErrorPropagates(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)
	userID := uuid.NewString()

	repoErr := errors.New("connection reset")
	repo.On("GetIncomeExpenseTotals", mock.Anything, userID, mock.Anything, mock.Anything).
		Return(decimal.Zero, decimal.Zero, repoErr)

	_, err := svc.GetSummary(context.Background(), userID, nil, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, repoErr)
}
