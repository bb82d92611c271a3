package domain

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessProcessReceipt = "receipt processed successfully"
	MessageSuccessGetReceipts    = "receipts retrieved successfully"
	MessageSuccessGetReceipt     = "receipt retrieved successfully"

	MessageFailedProcessReceipt = "failed to process receipt"
	MessageFailedGetReceipts    = "failed to retrieve receipts"
	MessageFailedGetReceipt     = "failed to retrieve receipt"

	ErrIncompleteReceipt       = errors.New("receipt is missing required fields")
	ErrConversionUnavailable   = errors.New("exchange rate lookup failed")
	ErrPersistenceFailed       = errors.New("failed to save receipt")
	ErrAborted                 = errors.New("receipt processing aborted")
	ErrReceiptNotFound         = errors.New("receipt not found")
	ErrUnauthorizedAccess      = errors.New("unauthorized access to receipt")
	ErrInvalidImageFormat      = errors.New("invalid image format")
	ErrReceiptProcessingFailed = errors.New("receipt processing failed")
)

// UnknownStoreName fills in when extraction could not read the merchant.
const UnknownStoreName = "Unknown Store"

// NotAReceiptError is returned when the model explicitly states the image is
// not a receipt. Reason carries the model's stated explanation.
type NotAReceiptError struct {
	Reason string
}

func (e *NotAReceiptError) Error() string {
	return fmt.Sprintf("not a receipt: %s", e.Reason)
}

// ExtractionError wraps a sanitizer or parse failure together with the raw
// model output for diagnostics.
type ExtractionError struct {
	Raw string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%v (raw output: %.200s)", e.Err, e.Raw)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// CurrencyContext carries disambiguation hints for ambiguous currency
// symbols. It is advisory only: the normalizer currently picks the first
// candidate regardless of context.
type CurrencyContext struct {
	StoreLocation string
	Language      string
}

type (
	ProcessReceiptRequest struct {
		ReceiptImage *multipart.FileHeader `json:"receipt_image" form:"receipt_image" validate:"required"`
	}

	ReceiptItemResponse struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
	}

	ReceiptDiscountResponse struct {
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
	}

	ReceiptResponse struct {
		ID                string                    `json:"id"`
		StoreName         string                    `json:"store_name"`
		TransactionDate   time.Time                 `json:"transaction_date"`
		Items             []ReceiptItemResponse     `json:"items"`
		Discounts         []ReceiptDiscountResponse `json:"discounts,omitempty"`
		Subtotal          float64                   `json:"subtotal"`
		TaxRate           float64                   `json:"tax_rate,omitempty"`
		TaxAmount         float64                   `json:"tax_amount,omitempty"`
		Total             float64                   `json:"total"`
		ImageURL          string                    `json:"image_url,omitempty"`
		Category          string                    `json:"category"`
		TaxReliefCategory *string                   `json:"tax_relief_category,omitempty"`
		CurrencyConverted bool                      `json:"currency_converted"`
		OriginalCurrency  string                    `json:"original_currency,omitempty"`
		CreatedAt         time.Time                 `json:"created_at"`
	}
)
