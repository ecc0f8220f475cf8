package pgsql

import (
	"context"
	"database/sql"
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

type PgxBudgetRepository struct {
	db *pgxpool.Pool
}

func newPgxBudgetRepository(db *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{db: db}
}

// Ensure PgxBudgetRepository implements portsrepo.BudgetRepositoryFacade
var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func toModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:   d.BudgetID,
		UserID:     d.UserID,
		CategoryID: sql.NullString{String: d.CategoryID, Valid: d.CategoryID != ""},
		Name:       d.Name,
		Amount:     d.Amount,
		Period:     models.BudgetPeriod(d.Period),
		StartDate:  d.StartDate,
		EndDate:    d.EndDate,
		IsActive:   d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// toDomainBudget maps a row into the domain. Spent is derived from
// transactions at service level, never read from storage.
func toDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:   m.BudgetID,
		UserID:     m.UserID,
		CategoryID: m.CategoryID.String,
		Name:       m.Name,
		Amount:     m.Amount,
		Period:     domain.BudgetPeriod(m.Period),
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		IsActive:   m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanBudget(row pgx.Row) (models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.UserID,
		&m.CategoryID,
		&m.Name,
		&m.Amount,
		&m.Period,
		&m.StartDate,
		&m.EndDate,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const budgetColumns = `budget_id, user_id, category_id, name, amount, period, start_date, end_date, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	modelBudget := toModelBudget(budget)
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		modelBudget.BudgetID,
		modelBudget.UserID,
		modelBudget.CategoryID,
		modelBudget.Name,
		modelBudget.Amount,
		modelBudget.Period,
		modelBudget.StartDate,
		modelBudget.EndDate,
		modelBudget.IsActive,
		modelBudget.CreatedAt,
		modelBudget.CreatedBy,
		modelBudget.LastUpdatedAt,
		modelBudget.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: budget with ID %s already exists", apperrors.ErrDuplicate, modelBudget.BudgetID)
		}
		return fmt.Errorf("failed to save budget %s: %w", modelBudget.BudgetID, err)
	}
	return nil
}

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string, userID string) (*domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE budget_id = $1 AND user_id = $2 AND is_active = TRUE;
	`
	modelBudget, err := scanBudget(r.db.QueryRow(ctx, query, budgetID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget by ID %s: %w", budgetID, err)
	}

	domainBudget := toDomainBudget(modelBudget)
	return &domainBudget, nil
}

func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		modelBudget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, toDomainBudget(modelBudget))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating budget rows: %w", rows.Err())
	}

	return budgets, nil
}

func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	modelBudget := toModelBudget(budget)
	query := `
		UPDATE budgets
		SET name = $1, amount = $2, period = $3, start_date = $4, end_date = $5,
			category_id = $6, last_updated_at = $7, last_updated_by = $8
		WHERE budget_id = $9 AND user_id = $10 AND is_active = TRUE;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		modelBudget.Name,
		modelBudget.Amount,
		modelBudget.Period,
		modelBudget.StartDate,
		modelBudget.EndDate,
		modelBudget.CategoryID,
		modelBudget.LastUpdatedAt,
		modelBudget.LastUpdatedBy,
		modelBudget.BudgetID,
		modelBudget.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget %s: %w", modelBudget.BudgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("budget not found or inactive: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxBudgetRepository) DeactivateBudget(ctx context.Context, budgetID string, userID string, now time.Time) error {
	query := `
		UPDATE budgets
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE budget_id = $3 AND user_id = $2 AND is_active = TRUE;
	`
	cmdTag, err := r.db.Exec(ctx, query, now, userID, budgetID)
	if err != nil {
		return fmt.Errorf("failed to deactivate budget %s: %w", budgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("budget not found or already inactive: %w", apperrors.ErrNotFound)
	}
	return nil
}
