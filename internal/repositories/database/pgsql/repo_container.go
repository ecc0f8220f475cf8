package pgsql

import (
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(dbPool),
		AccountRepo:     newPgxAccountRepository(dbPool),
		CategoryRepo:    newPgxCategoryRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		BudgetRepo:      newPgxBudgetRepository(dbPool),
		ReportingRepo:   newReportingRepository(dbPool),
	}
}
