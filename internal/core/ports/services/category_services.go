package services

import (
	"context"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/dompetku/dompetku_backend/internal/dto"
)

// CategoryReaderSvc defines read operations for category data
type CategoryReaderSvc interface {
	// GetCategoryByID retrieves a specific category by its unique identifier.
	GetCategoryByID(ctx context.Context, categoryID string, userID string) (*domain.Category, error)

	// ListCategories retrieves the user's active categories, optionally
	// filtered by category type.
	ListCategories(ctx context.Context, userID string, categoryType *domain.CategoryType) ([]domain.Category, error)
}

// CategoryWriterSvc defines write operations for category data
type CategoryWriterSvc interface {
	// CreateCategory persists a new category.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error)

	// UpdateCategory updates an existing category's details.
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.Category, error)

	// DeactivateCategory marks a category as inactive.
	DeactivateCategory(ctx context.Context, categoryID string, userID string) error
}

// CategorySvcFacade combines all category-related service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
