package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// categoryHandler handles HTTP requests related to categories.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

// newCategoryHandler creates a new categoryHandler.
func newCategoryHandler(cs portssvc.CategorySvcFacade) *categoryHandler {
	return &categoryHandler{
		categoryService: cs,
	}
}

// registerCategoryRoutes registers routes related to categories.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := newCategoryHandler(categoryService)

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("/:id", h.getCategory)
		categories.GET("", h.listCategories)
		categories.PUT("/:id", h.updateCategory)
		categories.DELETE("/:id", h.deleteCategory)
	}
}

// createCategory godoc
// @Summary Create a new category
// @Description Creates a new transaction category for the logged-in user
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create category"
// @Security BearerAuth
// @Router /categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCategory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to create category", slog.String("category_name", req.Name), slog.String("category_type", string(req.CategoryType)))

	newCategory, err := h.categoryService.CreateCategory(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating category", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create category in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		}
		return
	}

	logger.Info("Category created successfully", slog.String("category_id", newCategory.CategoryID))
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(newCategory))
}

// getCategory godoc
// @Summary Get a category by ID
// @Description Retrieves details for a specific category by its ID
// @Tags categories
// @Produce  json
// @Param   id path string true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 500 {object} map[string]string "Failed to retrieve category"
// @Security BearerAuth
// @Router /categories/{id} [get]
func (h *categoryHandler) getCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	categoryID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), categoryID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Category not found", slog.String("category_id", categoryID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to access category", slog.String("category_id", categoryID))
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to get category from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve category"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// listCategories godoc
// @Summary List categories for the logged-in user
// @Description Retrieves active categories, optionally filtered by type
// @Tags categories
// @Produce  json
// @Param   type query string false "Filter by category type (income or expense)"
// @Success 200 {object} dto.ListCategoriesResponse
// @Failure 400 {object} map[string]string "Invalid type filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list categories"
// @Security BearerAuth
// @Router /categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListCategoriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListCategories", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var categoryType *domain.CategoryType
	if params.Type != "" {
		t := domain.CategoryType(params.Type)
		categoryType = &t
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), userID, categoryType)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list categories from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}

	c.JSON(http.StatusOK, dto.ListCategoriesResponse{Categories: dto.ToListCategoryResponse(categories)})
}

// updateCategory godoc
// @Summary Update a category
// @Description Updates a category's display details (name, icon, color). The type is fixed at creation.
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   id path string true "Category ID to update"
// @Param   category body dto.UpdateCategoryRequest true "Category details to update"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 500 {object} map[string]string "Failed to update category"
// @Security BearerAuth
// @Router /categories/{id} [put]
func (h *categoryHandler) updateCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	categoryID := c.Param("id")
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCategory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updatedCategory, err := h.categoryService.UpdateCategory(c.Request.Context(), categoryID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Category not found for update", slog.String("category_id", categoryID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to update category", slog.String("category_id", categoryID))
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update category in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		}
		return
	}

	logger.Info("Category updated successfully", slog.String("category_id", categoryID))
	c.JSON(http.StatusOK, dto.ToCategoryResponse(updatedCategory))
}

// deleteCategory godoc
// @Summary Delete a category
// @Description Marks a category as inactive (soft delete); its transactions are retained
// @Tags categories
// @Produce  json
// @Param   id path string true "Category ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 500 {object} map[string]string "Failed to delete category"
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	categoryID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.categoryService.DeactivateCategory(c.Request.Context(), categoryID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Category not found for deletion", slog.String("category_id", categoryID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to delete category", slog.String("category_id", categoryID))
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to delete category in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		}
		return
	}

	logger.Info("Category deactivated successfully", slog.String("category_id", categoryID))
	c.Status(http.StatusNoContent)
}
