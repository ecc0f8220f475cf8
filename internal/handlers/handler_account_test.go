package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "dompetku-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAccountService = new(MockAccountService)

	v1 := suite.router.Group("/api/v1")
	registerAccountRoutes(v1, suite.mockAccountService)
}

func (suite *AccountHandlerTestSuite) authedRequest(method, url string, body []byte, userID string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	userID := uuid.NewString()
	reqBody := dto.CreateAccountRequest{
		Name:        "Maybank Savings",
		AccountType: domain.AccountMaybank2u,
	}
	created := &domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       userID,
		Name:         reqBody.Name,
		AccountType:  reqBody.AccountType,
		Balance:      decimal.Zero,
		CurrencyCode: "MYR",
		IsActive:     true,
	}

	suite.mockAccountService.On("CreateAccount",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
			return r.Name == reqBody.Name && r.AccountType == reqBody.AccountType
		}),
		userID,
	).Return(created, nil).Once()

	body, _ := json.Marshal(reqBody)
	w := suite.authedRequest(http.MethodPost, "/api/v1/accounts", body, userID)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.Equal("MYR", resp.CurrencyCode)

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidType() {
	userID := uuid.NewString()

	body := []byte(`{"name":"Wallet","accountType":"bitcoin"}`)
	w := suite.authedRequest(http.MethodPost, "/api/v1/accounts", body, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID", mock.Anything, accountID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_Forbidden() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID", mock.Anything, accountID, userID).
		Return(nil, apperrors.ErrForbidden).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil, userID)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListAccounts_Success() {
	userID := uuid.NewString()
	limit := 10
	expected := []domain.Account{
		{
			AccountID:    uuid.NewString(),
			UserID:       userID,
			Name:         "TnG eWallet",
			AccountType:  domain.AccountTouchNGo,
			Balance:      decimal.NewFromInt(250),
			CurrencyCode: "MYR",
			IsActive:     true,
		},
		{
			AccountID:    uuid.NewString(),
			UserID:       userID,
			Name:         "Cash",
			AccountType:  domain.AccountCash,
			Balance:      decimal.NewFromInt(80),
			CurrencyCode: "MYR",
			IsActive:     true,
		},
	}

	suite.mockAccountService.On("ListAccounts", mock.Anything, userID, limit, 0).
		Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/accounts?limit=%d", limit)
	w := suite.authedRequest(http.MethodGet, url, nil, userID)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListAccountsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, len(expected))
	if len(resp.Accounts) == len(expected) {
		suite.Equal(expected[0].AccountID, resp.Accounts[0].AccountID)
		suite.Equal(expected[1].AccountID, resp.Accounts[1].AccountID)
	}

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_Success() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("DeactivateAccount", mock.Anything, accountID, userID).
		Return(nil).Once()

	w := suite.authedRequest(http.MethodDelete, "/api/v1/accounts/"+accountID, nil, userID)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestMissingToken() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts")
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
