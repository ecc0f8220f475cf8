package vision

// receiptPrompt instructs the model to read Malaysian receipts and answer
// with bare JSON. The field names line up with domain.ReceiptRecord.
const receiptPrompt = `Analyze this Malaysian receipt (image or PDF) and extract the following information in JSON format:

{
  "merchant": "store/restaurant name",
  "date": "YYYY-MM-DD format",
  "total": "total amount as number",
  "items": [
    {
      "name": "item name",
      "quantity": "quantity as number",
      "price": "price as number"
    }
  ],
  "category": "expense category (food, shopping, transport, etc.)",
  "currency": "MYR",
  "taxAmount": "tax amount if available",
  "paymentMethod": "cash/card/ewallet if mentioned"
}

Focus on:
- Malaysian store names and formats
- Ringgit Malaysia (RM/MYR) currency
- Common Malaysian payment methods (Touch 'n Go, Boost, GrabPay, etc.)
- Local food items and store categories
- Date formats commonly used in Malaysia

Return only valid JSON without any explanation text.`
