package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// dateRangeClause appends inclusive transaction_date bounds for whichever of
// from/to is set. Filtering happens in SQL so summaries never load whole
// transaction histories into memory.
func dateRangeClause(args []any, from, to *time.Time) (string, []any) {
	clause := ""
	if from != nil {
		args = append(args, *from)
		clause += ` AND t.transaction_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		clause += ` AND t.transaction_date <= $` + strconv.Itoa(len(args))
	}
	return clause, args
}

// GetIncomeExpenseTotals sums a user's income and expense transactions in the
// given range. Transfers contribute to neither side.
func (r *reportingRepository) GetIncomeExpenseTotals(ctx context.Context, userID string, from, to *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := []any{userID}
	clause, args := dateRangeClause(args, from, to)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN t.transaction_type = 'income' THEN t.amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN t.transaction_type = 'expense' THEN t.amount ELSE 0 END), 0) AS total_expense
		FROM transactions t
		WHERE t.user_id = $1` + clause + `;
	`

	var income, expense decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&income, &expense); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("error querying income/expense totals: %w", err)
	}
	return income, expense, nil
}

// GetExpenseByCategory returns per-category expense totals in the given
// range, largest first.
func (r *reportingRepository) GetExpenseByCategory(ctx context.Context, userID string, from, to *time.Time) ([]domain.CategoryAmount, error) {
	args := []any{userID}
	clause, args := dateRangeClause(args, from, to)

	query := `
		SELECT
			c.category_id,
			c.name AS category_name,
			c.category_type,
			SUM(t.amount) AS total
		FROM transactions t
		JOIN categories c ON t.category_id = c.category_id
		WHERE t.user_id = $1
			AND t.transaction_type = 'expense'` + clause + `
		GROUP BY c.category_id, c.name, c.category_type
		ORDER BY total DESC;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying expense by category: %w", err)
	}
	defer rows.Close()

	result := []domain.CategoryAmount{}
	for rows.Next() {
		var row domain.CategoryAmount
		var categoryType string

		if err := rows.Scan(
			&row.CategoryID,
			&row.CategoryName,
			&categoryType,
			&row.Total,
		); err != nil {
			return nil, fmt.Errorf("error scanning category total row: %w", err)
		}

		row.CategoryType = domain.CategoryType(categoryType)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category total rows: %w", err)
	}

	return result, nil
}
