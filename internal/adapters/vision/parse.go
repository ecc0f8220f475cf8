package vision

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
)

// ParseReceipt turns the model's raw completion into a ReceiptRecord. It is
// pure and idempotent: the same input always yields the same result.
//
// Models routinely wrap the JSON in markdown fences or pad it with prose, so
// the text is trimmed to the outermost {...} before unmarshaling. Malformed
// JSON is ErrParseFailure; valid JSON missing merchant, total or date is
// ErrMissingField. A present-but-unparseable date string passes through
// untouched so the user can correct it in the form.
func ParseReceipt(raw string) (*domain.ReceiptRecord, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	startIdx := strings.Index(text, "{")
	endIdx := strings.LastIndex(text, "}")
	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("%w: no JSON object in completion", apperrors.ErrParseFailure)
	}
	text = text[startIdx : endIdx+1]

	var record domain.ReceiptRecord
	if err := json.Unmarshal([]byte(text), &record); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrParseFailure, err)
	}

	record.Merchant = strings.TrimSpace(record.Merchant)
	record.Date = strings.TrimSpace(record.Date)

	if record.Merchant == "" {
		return nil, fmt.Errorf("%w: merchant", apperrors.ErrMissingField)
	}
	if record.Total.IsZero() {
		return nil, fmt.Errorf("%w: total", apperrors.ErrMissingField)
	}
	if record.Date == "" {
		return nil, fmt.Errorf("%w: date", apperrors.ErrMissingField)
	}

	if record.Currency == "" {
		record.Currency = "MYR"
	}

	return &record, nil
}
