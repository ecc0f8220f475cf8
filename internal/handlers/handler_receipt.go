package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// receiptHandler handles receipt scan requests.
type receiptHandler struct {
	receiptService portssvc.ReceiptSvcFacade
}

// newReceiptHandler creates a new receiptHandler.
func newReceiptHandler(rs portssvc.ReceiptSvcFacade) *receiptHandler {
	return &receiptHandler{
		receiptService: rs,
	}
}

// registerReceiptRoutes registers the receipt scan route with its rate limit.
func registerReceiptRoutes(rg *gin.RouterGroup, receiptService portssvc.ReceiptSvcFacade, scanLimiter *limiter.Limiter) {
	h := newReceiptHandler(receiptService)

	receipts := rg.Group("/receipts")
	{
		receipts.POST("/scan", middleware.RateLimit(scanLimiter), h.scanReceipt)
	}
}

// receiptErrorStatus maps a receipt pipeline error to an HTTP status and a
// user-facing message. Every distinct failure keeps its own message so the
// frontend can surface the actual cause instead of a generic retry hint.
func receiptErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrUnsupportedFile):
		return http.StatusUnsupportedMediaType, "Unsupported file type. Upload a JPEG, PNG, WebP or PDF."
	case errors.Is(err, apperrors.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge, "File is too large."
	case errors.Is(err, apperrors.ErrNotConfigured):
		return http.StatusServiceUnavailable, "Receipt scanning is not configured on this server."
	case errors.Is(err, apperrors.ErrBadCredential):
		return http.StatusBadGateway, "Receipt scanning is misconfigured, contact the administrator."
	case errors.Is(err, apperrors.ErrRateLimited):
		return http.StatusTooManyRequests, "Receipt scanning is temporarily rate limited, try again later."
	case errors.Is(err, apperrors.ErrTimeout):
		return http.StatusGatewayTimeout, "Receipt scan timed out, try again."
	case errors.Is(err, apperrors.ErrNetwork):
		return http.StatusBadGateway, "Could not reach the receipt scanning service."
	case errors.Is(err, apperrors.ErrMissingField):
		return http.StatusUnprocessableEntity, "The receipt could not be read completely: " + err.Error()
	case errors.Is(err, apperrors.ErrParseFailure):
		return http.StatusUnprocessableEntity, "The receipt could not be read. Enter the transaction manually."
	case errors.Is(err, apperrors.ErrServiceFailure):
		return http.StatusBadGateway, "Receipt scanning failed, try again later."
	default:
		return http.StatusInternalServerError, "Failed to scan receipt."
	}
}

// scanReceipt godoc
// @Summary Scan a receipt
// @Description Extracts merchant, total, date and a category suggestion from an uploaded receipt image or PDF. The result is prefill data; nothing is persisted.
// @Tags receipts
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "Receipt image (JPEG, PNG, WebP) or PDF"
// @Success 200 {object} dto.ReceiptScanResponse
// @Failure 400 {object} map[string]string "Missing or unreadable file"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 413 {object} map[string]string "File too large"
// @Failure 415 {object} map[string]string "Unsupported file type"
// @Failure 422 {object} map[string]string "Receipt could not be parsed"
// @Failure 429 {object} map[string]string "Rate limited"
// @Failure 502 {object} map[string]string "Vision service failure"
// @Failure 503 {object} map[string]string "Scanning not configured"
// @Failure 504 {object} map[string]string "Vision service timeout"
// @Security BearerAuth
// @Router /receipts/scan [post]
func (h *receiptHandler) scanReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		middleware.ReceiptScansTotal.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Receipt file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded receipt", slog.String("error", err.Error()))
		middleware.ReceiptScansTotal.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded receipt", slog.String("error", err.Error()))
		middleware.ReceiptScansTotal.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	logger.Info("Received receipt scan request",
		slog.String("mime_type", mimeType),
		slog.Int("size_bytes", len(data)),
	)

	result, err := h.receiptService.ScanReceipt(c.Request.Context(), userID, data, mimeType)
	if err != nil {
		status, msg := receiptErrorStatus(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Receipt scan failed", slog.String("error", err.Error()))
		} else {
			logger.Warn("Receipt scan rejected", slog.String("error", err.Error()))
		}
		middleware.ReceiptScansTotal.WithLabelValues("failure").Inc()
		c.JSON(status, gin.H{"error": msg})
		return
	}

	middleware.ReceiptScansTotal.WithLabelValues("success").Inc()
	logger.Info("Receipt scanned successfully", slog.String("merchant", result.Description))
	c.JSON(http.StatusOK, result)
}
