package services

import (
	"context"

	"github.com/dompetku/dompetku_backend/internal/dto"
)

// ReceiptExtractor is the outbound port to the vision model. Implementations
// send the file content inline and return the model's raw text reply.
type ReceiptExtractor interface {
	// AnalyzeReceipt submits the receipt file to the vision model and returns
	// the raw completion text. File type and size are checked before any I/O.
	AnalyzeReceipt(ctx context.Context, data []byte, mimeType string) (string, error)
}

// ReceiptSvcFacade defines the receipt scanning workflow
type ReceiptSvcFacade interface {
	// ScanReceipt runs extraction, parsing and category reconciliation for
	// the uploaded file and returns prefill data for the transaction form.
	ScanReceipt(ctx context.Context, userID string, data []byte, mimeType string) (*dto.ReceiptScanResponse, error)
}
