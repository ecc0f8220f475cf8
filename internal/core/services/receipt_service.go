package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dompetku/dompetku_backend/internal/adapters/vision"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/middleware"
)

type receiptService struct {
	extractor    portssvc.ReceiptExtractor
	categoryRepo portsrepo.CategoryReader
}

// NewReceiptService creates the receipt scanning service. The extractor is
// injected explicitly so handlers and tests control which client is used.
func NewReceiptService(extractor portssvc.ReceiptExtractor, categoryRepo portsrepo.CategoryReader) portssvc.ReceiptSvcFacade {
	return &receiptService{
		extractor:    extractor,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.ReceiptSvcFacade = (*receiptService)(nil)

// ScanReceipt runs the full extraction pipeline for one uploaded file:
// vision call, JSON parsing, category tag fallback and reconciliation against
// the user's own categories. Any failure surfaces as-is so the handler can
// map it; the user can always fall back to manual entry.
func (s *receiptService) ScanReceipt(ctx context.Context, userID string, data []byte, mimeType string) (*dto.ReceiptScanResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	raw, err := s.extractor.AnalyzeReceipt(ctx, data, mimeType)
	if err != nil {
		return nil, err
	}

	record, err := vision.ParseReceipt(raw)
	if err != nil {
		return nil, err
	}

	if record.Category == "" || record.Category == fallbackCategory {
		record.Category = CategorizeMerchant(record.Merchant)
	}

	expenseType := domain.CategoryExpense
	categories, err := s.categoryRepo.ListCategories(ctx, userID, &expenseType)
	if err != nil {
		logger.Error("Failed to list categories for receipt reconciliation", slog.String("error", err.Error()))
		return nil, err
	}

	categoryID := ""
	if match := reconcileCategory(record.Category, categories); match != nil {
		categoryID = match.CategoryID
	}

	logger.Info("Receipt scanned",
		slog.String("merchant", record.Merchant),
		slog.String("category_tag", record.Category),
		slog.Bool("category_matched", categoryID != ""))

	return &dto.ReceiptScanResponse{
		Amount:      record.Total,
		Date:        record.Date,
		Description: record.Merchant,
		CategoryID:  categoryID,
		Record:      *record,
	}, nil
}

// reconcileCategory maps a loose category tag onto one of the user's own
// categories. The test is case-insensitive substring containment in either
// direction, so the tag "food" matches a category named "Food & Dining" and
// the tag "grocery shopping" matches a category named "Shopping". Ties are
// broken by list order, which the repository keeps stable.
func reconcileCategory(tag string, categories []domain.Category) *domain.Category {
	tagLower := strings.ToLower(strings.TrimSpace(tag))
	if tagLower == "" {
		return nil
	}
	for i := range categories {
		nameLower := strings.ToLower(categories[i].Name)
		if strings.Contains(nameLower, tagLower) || strings.Contains(tagLower, nameLower) {
			return &categories[i]
		}
	}
	return nil
}
