package domain

import "github.com/shopspring/decimal"

// ReceiptItem is a single line item extracted from a receipt.
type ReceiptItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// ReceiptRecord is the structured extraction of a purchase document. It is
// transient: produced by the receipt parser, shown to the user for
// confirmation, and only persisted once converted into a Transaction.
type ReceiptRecord struct {
	Merchant string          `json:"merchant"`
	Date     string          `json:"date"` // YYYY-MM-DD as returned by the model
	Total    decimal.Decimal `json:"total"`
	Items    []ReceiptItem   `json:"items,omitempty"`
	Category string          `json:"category,omitempty"` // loose tag, reconciled later
	Currency string          `json:"currency"`

	TaxAmount     *decimal.Decimal `json:"taxAmount,omitempty"`
	PaymentMethod string           `json:"paymentMethod,omitempty"`
}
