package services

import (
	"context"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// GetSummary computes income/expense totals, net balance and a
	// per-category expense breakdown for the user. Nil bounds leave that
	// side of the date range open; bounds are inclusive.
	GetSummary(ctx context.Context, userID string, from, to *time.Time) (*domain.Summary, error)
}
