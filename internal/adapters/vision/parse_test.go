package vision_test

import (
	"testing"

	"github.com/dompetku/dompetku_backend/internal/adapters/vision"
	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCompletion = `{
  "merchant": "Restoran Nasi Kandar Pelita",
  "date": "2025-03-15",
  "total": 28.90,
  "items": [{"name": "nasi kandar", "quantity": 2, "price": 12.00}],
  "category": "food",
  "currency": "MYR",
  "paymentMethod": "Touch 'n Go"
}`

func TestParseReceipt_PlainJSON(t *testing.T) {
	record, err := vision.ParseReceipt(validCompletion)

	require.NoError(t, err)
	assert.Equal(t, "Restoran Nasi Kandar Pelita", record.Merchant)
	assert.Equal(t, "2025-03-15", record.Date)
	assert.True(t, record.Total.Equal(decimal.RequireFromString("28.90")))
	require.Len(t, record.Items, 1)
	assert.Equal(t, 2, record.Items[0].Quantity)
	assert.Equal(t, "food", record.Category)
	assert.Equal(t, "MYR", record.Currency)
}

func TestParseReceipt_MarkdownFences(t *testing.T) {
	fenced := "```json\n" + validCompletion + "\n```"

	record, err := vision.ParseReceipt(fenced)

	require.NoError(t, err)
	assert.Equal(t, "Restoran Nasi Kandar Pelita", record.Merchant)
}

func TestParseReceipt_SurroundingProse(t *testing.T) {
	wrapped := "Here is the extracted data:\n" + validCompletion + "\nLet me know if you need anything else."

	record, err := vision.ParseReceipt(wrapped)

	require.NoError(t, err)
	assert.Equal(t, "Restoran Nasi Kandar Pelita", record.Merchant)
}

func TestParseReceipt_MalformedJSON(t *testing.T) {
	for _, raw := range []string{
		"not json at all",
		`{"merchant": "KFC", "total":`,
		"```json\ngarbage\n```",
	} {
		_, err := vision.ParseReceipt(raw)
		assert.ErrorIs(t, err, apperrors.ErrParseFailure, "input %q", raw)
	}
}

func TestParseReceipt_MissingFields(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"merchant", `{"date":"2025-01-01","total":10}`},
		{"total", `{"merchant":"KFC","date":"2025-01-01"}`},
		{"date", `{"merchant":"KFC","total":10}`},
	}
	for _, tc := range cases {
		_, err := vision.ParseReceipt(tc.raw)
		require.Error(t, err, tc.name)
		assert.ErrorIs(t, err, apperrors.ErrMissingField)
		assert.NotErrorIs(t, err, apperrors.ErrParseFailure, "missing %s must not be a parse failure", tc.name)
		assert.Contains(t, err.Error(), tc.name)
	}
}

func TestParseReceipt_UnparsedDatePassesThrough(t *testing.T) {
	raw := `{"merchant":"KFC","date":"15 Mac 2025","total":10}`

	record, err := vision.ParseReceipt(raw)

	require.NoError(t, err)
	assert.Equal(t, "15 Mac 2025", record.Date)
}

func TestParseReceipt_DefaultsCurrency(t *testing.T) {
	raw := `{"merchant":"KFC","date":"2025-01-01","total":10}`

	record, err := vision.ParseReceipt(raw)

	require.NoError(t, err)
	assert.Equal(t, "MYR", record.Currency)
}

func TestParseReceipt_Idempotent(t *testing.T) {
	first, err := vision.ParseReceipt(validCompletion)
	require.NoError(t, err)
	second, err := vision.ParseReceipt(validCompletion)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
