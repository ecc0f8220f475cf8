package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
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
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// --- Mock ReceiptService ---
type MockReceiptService struct {
	mock.Mock
}

func (m *MockReceiptService) ScanReceipt(ctx context.Context, userID string, data []byte, mimeType string) (*dto.ReceiptScanResponse, error) {
	args := m.Called(ctx, userID, data, mimeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReceiptScanResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ReceiptSvcFacade = (*MockReceiptService)(nil)

// --- Test Suite ---
type ReceiptHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockReceiptService *MockReceiptService
	jwtSecret          string
}

func (suite *ReceiptHandlerTestSuite) generateTestToken(userID string) string {
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

func (suite *ReceiptHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockReceiptService = new(MockReceiptService)

	// A generous limit so the rate limiter does not interfere with these tests.
	rate, err := limiter.NewRateFromFormatted("100-M")
	suite.Require().NoError(err)
	scanLimiter := limiter.New(memory.NewStore(), rate)

	v1 := suite.router.Group("/api/v1")
	registerReceiptRoutes(v1, suite.mockReceiptService, scanLimiter)
}

// uploadReceipt posts a multipart form with a single "file" part.
func (suite *ReceiptHandlerTestSuite) uploadReceipt(userID string, fileName, contentType string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	suite.Require().NoError(err)
	_, err = part.Write(content)
	suite.Require().NoError(err)
	suite.Require().NoError(writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/receipts/scan", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ReceiptHandlerTestSuite) TestScanReceipt_Success() {
	userID := uuid.NewString()
	fileContent := []byte("fake-jpeg-bytes")

	expected := &dto.ReceiptScanResponse{
		Amount:      decimal.RequireFromString("23.90"),
		Date:        "2025-06-14",
		Description: "99 Speedmart",
		CategoryID:  uuid.NewString(),
		Record: domain.ReceiptRecord{
			Merchant: "99 Speedmart",
			Date:     "2025-06-14",
			Total:    decimal.RequireFromString("23.90"),
			Currency: "MYR",
		},
	}

	suite.mockReceiptService.On("ScanReceipt", mock.Anything, userID, fileContent, "image/jpeg").
		Return(expected, nil).Once()

	w := suite.uploadReceipt(userID, "receipt.jpg", "image/jpeg", fileContent)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ReceiptScanResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.Description, resp.Description)
	suite.True(expected.Amount.Equal(resp.Amount))
	suite.Equal(expected.CategoryID, resp.CategoryID)
	suite.Equal("MYR", resp.Record.Currency)

	suite.mockReceiptService.AssertExpectations(suite.T())
}

func (suite *ReceiptHandlerTestSuite) TestScanReceipt_MissingFile() {
	userID := uuid.NewString()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/receipts/scan", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReceiptService.AssertNotCalled(suite.T(), "ScanReceipt")
}

func (suite *ReceiptHandlerTestSuite) TestScanReceipt_UnsupportedFile() {
	userID := uuid.NewString()
	fileContent := []byte("GIF89a")

	suite.mockReceiptService.On("ScanReceipt", mock.Anything, userID, fileContent, "image/gif").
		Return(nil, fmt.Errorf("mime type image/gif: %w", apperrors.ErrUnsupportedFile)).Once()

	w := suite.uploadReceipt(userID, "receipt.gif", "image/gif", fileContent)

	suite.Equal(http.StatusUnsupportedMediaType, w.Code)
	suite.mockReceiptService.AssertExpectations(suite.T())
}

func (suite *ReceiptHandlerTestSuite) TestScanReceipt_ParseFailure() {
	userID := uuid.NewString()
	fileContent := []byte("blurry")

	suite.mockReceiptService.On("ScanReceipt", mock.Anything, userID, fileContent, "image/png").
		Return(nil, fmt.Errorf("no JSON object in completion: %w", apperrors.ErrParseFailure)).Once()

	w := suite.uploadReceipt(userID, "receipt.png", "image/png", fileContent)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockReceiptService.AssertExpectations(suite.T())
}

func (suite *ReceiptHandlerTestSuite) TestScanReceipt_NotConfigured() {
	userID := uuid.NewString()
	fileContent := []byte("bytes")

	suite.mockReceiptService.On("ScanReceipt", mock.Anything, userID, fileContent, "image/png").
		Return(nil, apperrors.ErrNotConfigured).Once()

	w := suite.uploadReceipt(userID, "receipt.png", "image/png", fileContent)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.mockReceiptService.AssertExpectations(suite.T())
}

func (suite *ReceiptHandlerTestSuite) TestScanReceipt_VisionTimeout() {
	userID := uuid.NewString()
	fileContent := []byte("bytes")

	suite.mockReceiptService.On("ScanReceipt", mock.Anything, userID, fileContent, "image/png").
		Return(nil, fmt.Errorf("vision request: %w", apperrors.ErrTimeout)).Once()

	w := suite.uploadReceipt(userID, "receipt.png", "image/png", fileContent)

	suite.Equal(http.StatusGatewayTimeout, w.Code)
	suite.mockReceiptService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestReceiptHandler(t *testing.T) {
	suite.Run(t, new(ReceiptHandlerTestSuite))
}
