package dto

import (
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a new category.
type CreateCategoryRequest struct {
	Name         string              `json:"name" binding:"required,min=1,max=100"`
	CategoryType domain.CategoryType `json:"categoryType" binding:"required,oneof=income expense"`
	Icon         string              `json:"icon"`
	Color        string              `json:"color"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID    string              `json:"categoryID"`
	Name          string              `json:"name"`
	CategoryType  domain.CategoryType `json:"categoryType"`
	Icon          string              `json:"icon,omitempty"`
	Color         string              `json:"color,omitempty"`
	IsActive      bool                `json:"isActive"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:    cat.CategoryID,
		Name:          cat.Name,
		CategoryType:  cat.CategoryType,
		Icon:          cat.Icon,
		Color:         cat.Color,
		IsActive:      cat.IsActive,
		CreatedAt:     cat.CreatedAt,
		LastUpdatedAt: cat.LastUpdatedAt,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to a slice of CategoryResponse DTOs
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		res[i] = ToCategoryResponse(&cat)
	}
	return res
}

// ListCategoriesParams defines query parameters for listing categories.
type ListCategoriesParams struct {
	Type string `form:"type" binding:"omitempty,oneof=income expense"`
}

// ListCategoriesResponse wraps the list of categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
