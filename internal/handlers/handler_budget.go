package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// budgetHandler handles HTTP requests related to budgets.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

// newBudgetHandler creates a new budgetHandler.
func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{
		budgetService: bs,
	}
}

// registerBudgetRoutes registers routes related to budgets.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("/:id", h.getBudget)
		budgets.GET("", h.listBudgets)
		budgets.PUT("/:id", h.updateBudget)
		budgets.DELETE("/:id", h.deleteBudget)
	}
}

// createBudget godoc
// @Summary Create a new budget
// @Description Creates a spending cap over a period, optionally scoped to one category
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budget body dto.CreateBudgetRequest true "Budget details"
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create budget"
// @Security BearerAuth
// @Router /budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to create budget", slog.String("budget_name", req.Name), slog.String("period", string(req.Period)))

	newBudget, err := h.budgetService.CreateBudget(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating budget", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Referenced category not found", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create budget in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget"})
		}
		return
	}

	logger.Info("Budget created successfully", slog.String("budget_id", newBudget.BudgetID))
	c.JSON(http.StatusCreated, dto.ToBudgetResponse(newBudget))
}

// getBudget godoc
// @Summary Get a budget by ID
// @Description Retrieves a budget with its spent amount derived from transactions in the budget window
// @Tags budgets
// @Produce  json
// @Param   id path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to retrieve budget"
// @Security BearerAuth
// @Router /budgets/{id} [get]
func (h *budgetHandler) getBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.GetBudgetByID(c.Request.Context(), budgetID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Budget not found", slog.String("budget_id", budgetID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		} else {
			logger.Error("Failed to get budget from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve budget"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// listBudgets godoc
// @Summary List budgets for the logged-in user
// @Description Retrieves active budgets with spent amounts populated
// @Tags budgets
// @Produce  json
// @Success 200 {object} dto.ListBudgetsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list budgets"
// @Security BearerAuth
// @Router /budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list budgets from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list budgets"})
		return
	}

	c.JSON(http.StatusOK, dto.ListBudgetsResponse{Budgets: dto.ToListBudgetResponse(budgets)})
}

// updateBudget godoc
// @Summary Update a budget
// @Description Updates a budget's details (name, amount, period, end date)
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   id path string true "Budget ID to update"
// @Param   budget body dto.UpdateBudgetRequest true "Budget details to update"
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to update budget"
// @Security BearerAuth
// @Router /budgets/{id} [put]
func (h *budgetHandler) updateBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("id")
	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updatedBudget, err := h.budgetService.UpdateBudget(c.Request.Context(), budgetID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Budget not found for update", slog.String("budget_id", budgetID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating budget", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update budget in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget"})
		}
		return
	}

	logger.Info("Budget updated successfully", slog.String("budget_id", budgetID))
	c.JSON(http.StatusOK, dto.ToBudgetResponse(updatedBudget))
}

// deleteBudget godoc
// @Summary Delete a budget
// @Description Marks a budget as inactive (soft delete)
// @Tags budgets
// @Produce  json
// @Param   id path string true "Budget ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to delete budget"
// @Security BearerAuth
// @Router /budgets/{id} [delete]
func (h *budgetHandler) deleteBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.budgetService.DeactivateBudget(c.Request.Context(), budgetID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Budget not found for deletion", slog.String("budget_id", budgetID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		} else {
			logger.Error("Failed to delete budget in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete budget"})
		}
		return
	}

	logger.Info("Budget deactivated successfully", slog.String("budget_id", budgetID))
	c.Status(http.StatusNoContent)
}
