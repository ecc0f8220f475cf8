package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	"github.com/dompetku/dompetku_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCategoryRepository struct {
	db *pgxpool.Pool
}

func newPgxCategoryRepository(db *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{db: db}
}

// Ensure PgxCategoryRepository implements portsrepo.CategoryRepositoryFacade
var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func toModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:   d.CategoryID,
		UserID:       d.UserID,
		Name:         d.Name,
		CategoryType: models.CategoryType(d.CategoryType),
		Icon:         d.Icon,
		Color:        d.Color,
		IsActive:     d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:   m.CategoryID,
		UserID:       m.UserID,
		Name:         m.Name,
		CategoryType: domain.CategoryType(m.CategoryType),
		Icon:         m.Icon,
		Color:        m.Color,
		IsActive:     m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.UserID,
		&m.Name,
		&m.CategoryType,
		&m.Icon,
		&m.Color,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const categoryColumns = `category_id, user_id, name, category_type, icon, color, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	modelCat := toModelCategory(category)
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db.Exec(ctx, query,
		modelCat.CategoryID,
		modelCat.UserID,
		modelCat.Name,
		modelCat.CategoryType,
		modelCat.Icon,
		modelCat.Color,
		modelCat.IsActive,
		modelCat.CreatedAt,
		modelCat.CreatedBy,
		modelCat.LastUpdatedAt,
		modelCat.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: category with ID %s already exists", apperrors.ErrDuplicate, modelCat.CategoryID)
		}
		return fmt.Errorf("failed to save category %s: %w", modelCat.CategoryID, err)
	}
	return nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE category_id = $1;
	`
	modelCat, err := scanCategory(r.db.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}

	domainCat := toDomainCategory(modelCat)
	return &domainCat, nil
}

// ListCategories returns a user's active categories, newest first. The
// ordering is part of the contract: receipt category matching resolves ties
// by taking the first match in this order.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, userID string, categoryType *domain.CategoryType) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1 AND is_active = TRUE
	`
	args := []any{userID}
	if categoryType != nil {
		query += ` AND category_type = $2`
		args = append(args, string(*categoryType))
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		modelCat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, toDomainCategory(modelCat))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", rows.Err())
	}

	return categories, nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	modelCat := toModelCategory(category)
	query := `
		UPDATE categories
		SET name = $1, icon = $2, color = $3, last_updated_at = $4, last_updated_by = $5
		WHERE category_id = $6 AND user_id = $7 AND is_active = TRUE;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		modelCat.Name,
		modelCat.Icon,
		modelCat.Color,
		modelCat.LastUpdatedAt,
		modelCat.LastUpdatedBy,
		modelCat.CategoryID,
		modelCat.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", modelCat.CategoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("category not found or inactive: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxCategoryRepository) DeactivateCategory(ctx context.Context, categoryID string, userID string, now time.Time) error {
	query := `
		UPDATE categories
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE category_id = $3 AND user_id = $2 AND is_active = TRUE;
	`
	cmdTag, err := r.db.Exec(ctx, query, now, userID, categoryID)
	if err != nil {
		return fmt.Errorf("failed to deactivate category %s: %w", categoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("category not found or already inactive: %w", apperrors.ErrNotFound)
	}
	return nil
}
