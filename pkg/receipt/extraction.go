package receipt

import (
	"StyleSnap-Backend/domain"
	"encoding/json"
)

type (
	ExtractedItem struct {
		Name     string
		Price    float64
		Quantity int
	}

	ExtractedTax struct {
		Rate   float64
		Amount float64
	}

	ExtractedDiscount struct {
		Description string
		Amount      float64
	}

	// ExtractedReceipt is the structurally valid, numerically coerced result
	// of a successful extraction, ready for currency normalization.
	ExtractedReceipt struct {
		StoreName         string
		Date              string
		Items             []ExtractedItem
		Subtotal          float64
		Tax               *ExtractedTax
		Discounts         []ExtractedDiscount
		Total             float64
		Currency          string
		CurrencyConverted bool
		Category          string
		StoreLocation     string
		Language          string
	}

	// rawExtraction mirrors the model's JSON output. Monetary fields are
	// interface{} because the model sometimes emits them as strings.
	rawExtraction struct {
		IsReceipt bool            `json:"isReceipt"`
		Reason    string          `json:"reason"`
		Data      *rawReceiptData `json:"data"`
	}

	rawReceiptData struct {
		StoreName string        `json:"storeName"`
		Date      string        `json:"date"`
		Items     []rawItem     `json:"items"`
		Subtotal  interface{}   `json:"subtotal"`
		Tax       *rawTax       `json:"tax"`
		Discounts []rawDiscount `json:"discounts"`
		Total     interface{}   `json:"total"`

		Currency          string `json:"currency"`
		CurrencyConverted bool   `json:"currencyConverted"`
		OriginalCurrency  string `json:"originalCurrency"`
		Category          string `json:"category"`
		StoreLocation     string `json:"storeLocation"`
		Language          string `json:"language"`
	}

	rawItem struct {
		Name     string      `json:"name"`
		Price    interface{} `json:"price"`
		Quantity interface{} `json:"quantity"`
	}

	rawTax struct {
		Rate   interface{} `json:"rate"`
		Amount interface{} `json:"amount"`
	}

	rawDiscount struct {
		Description string      `json:"description"`
		Amount      interface{} `json:"amount"`
	}
)

// ParseExtraction turns sanitized model output into a tagged result: a valid
// receipt, an explicit non-receipt, or a malformed response. It never guesses
// at ambiguous shapes.
func ParseExtraction(jsonStr string) (*ExtractedReceipt, error) {
	var raw rawExtraction
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, &domain.ExtractionError{Raw: jsonStr, Err: domain.ErrExtractionFailed}
	}

	if !raw.IsReceipt {
		return nil, &domain.NotAReceiptError{Reason: raw.Reason}
	}

	if raw.Data == nil {
		return nil, domain.ErrIncompleteReceipt
	}

	return validateAndCoerce(raw.Data)
}
