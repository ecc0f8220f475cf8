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
)

type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates the category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// CreateCategory persists a new category for the user.
func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	category := domain.Category{
		CategoryID:   uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		CategoryType: req.CategoryType,
		Icon:         req.Icon,
		Color:        req.Color,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category in repository", slog.String("error", err.Error()), slog.String("category_id", category.CategoryID))
		return nil, err
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

// GetCategoryByID retrieves a category and enforces ownership.
func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string, userID string) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find category by ID", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		}
		return nil, err
	}
	if category.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return category, nil
}

// ListCategories retrieves the user's active categories, optionally filtered
// by type.
func (s *categoryService) ListCategories(ctx context.Context, userID string, categoryType *domain.CategoryType) ([]domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if categoryType != nil && !domain.ValidCategoryType(*categoryType) {
		return nil, apperrors.ErrValidation
	}

	categories, err := s.categoryRepo.ListCategories(ctx, userID, categoryType)
	if err != nil {
		logger.Error("Failed to list categories", slog.String("error", err.Error()))
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

// UpdateCategory updates name, icon and color of an existing category. The
// type is fixed at creation so past summaries keep their meaning.
func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category, err := s.GetCategoryByID(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		logger.Error("Failed to update category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return nil, err
	}

	logger.Info("Category updated", slog.String("category_id", categoryID))
	return category, nil
}

// DeactivateCategory marks a category as inactive.
func (s *categoryService) DeactivateCategory(ctx context.Context, categoryID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetCategoryByID(ctx, categoryID, userID); err != nil {
		return err
	}

	if err := s.categoryRepo.DeactivateCategory(ctx, categoryID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to deactivate category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		}
		return err
	}

	logger.Info("Category deactivated", slog.String("category_id", categoryID))
	return nil
}
