package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles reporting requests.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getSummary)
	}
}

// getSummary godoc
// @Summary Get a financial summary
// @Description Returns income and expense totals, the net balance and a per-category expense breakdown for the authenticated user. Both date bounds are optional and inclusive.
// @Tags reports
// @Produce  json
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	if params.From != nil && params.To != nil && params.To.Before(*params.From) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'to' must not be before 'from'"})
		return
	}

	summary, err := h.reportingService.GetSummary(c.Request.Context(), userID, params.From, params.To)
	if err != nil {
		logger.Error("Failed to compute summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary, params.From, params.To))
}
