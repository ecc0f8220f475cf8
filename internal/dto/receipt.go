package dto

import (
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReceiptScanResponse carries the prefill data for the transaction form after
// a successful receipt scan. CategoryID is empty when no existing category
// matched; the account is always left for the user to choose.
type ReceiptScanResponse struct {
	Amount      decimal.Decimal      `json:"amount"`
	Date        string               `json:"date"` // YYYY-MM-DD, may be empty or unparsed
	Description string               `json:"description"`
	CategoryID  string               `json:"categoryID,omitempty"`
	Record      domain.ReceiptRecord `json:"record"`
}
