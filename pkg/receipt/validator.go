package receipt

import (
	"StyleSnap-Backend/domain"
	"encoding/json"
	"strconv"
	"strings"
)

// validateAndCoerce enforces minimum structural completeness and coerces
// every monetary field to a number. Unparseable values become 0 rather than
// rejecting the receipt: extraction is best-effort by design.
func validateAndCoerce(data *rawReceiptData) (*ExtractedReceipt, error) {
	if strings.TrimSpace(data.StoreName) == "" ||
		len(data.Items) == 0 ||
		data.Total == nil ||
		strings.TrimSpace(data.Date) == "" {
		return nil, domain.ErrIncompleteReceipt
	}

	result := &ExtractedReceipt{
		StoreName:         strings.TrimSpace(data.StoreName),
		Date:              strings.TrimSpace(data.Date),
		Subtotal:          coerceAmount(data.Subtotal),
		Total:             coerceAmount(data.Total),
		Currency:          firstNonEmpty(data.OriginalCurrency, data.Currency),
		CurrencyConverted: data.CurrencyConverted,
		Category:          data.Category,
		StoreLocation:     data.StoreLocation,
		Language:          data.Language,
	}

	for _, item := range data.Items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, domain.ErrIncompleteReceipt
		}
		result.Items = append(result.Items, ExtractedItem{
			Name:     name,
			Price:    coerceAmount(item.Price),
			Quantity: coerceQuantity(item.Quantity),
		})
	}

	if data.Tax != nil {
		result.Tax = &ExtractedTax{
			Rate:   coerceAmount(data.Tax.Rate),
			Amount: coerceAmount(data.Tax.Amount),
		}
	}

	for _, d := range data.Discounts {
		result.Discounts = append(result.Discounts, ExtractedDiscount{
			Description: d.Description,
			Amount:      coerceAmount(d.Amount),
		})
	}

	return result, nil
}

// coerceAmount accepts numbers or numeric strings (with optional currency
// symbols) and clamps negatives to zero. Anything else becomes 0.
func coerceAmount(v interface{}) float64 {
	var amount float64
	switch value := v.(type) {
	case float64:
		amount = value
	case int:
		amount = float64(value)
	case json.Number:
		amount, _ = value.Float64()
	case string:
		amount = parseNumericString(value)
	default:
		return 0
	}
	if amount < 0 {
		return 0
	}
	return amount
}

func coerceQuantity(v interface{}) int {
	var qty int
	switch value := v.(type) {
	case float64:
		qty = int(value)
	case int:
		qty = value
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 1
		}
		qty = parsed
	default:
		return 1
	}
	if qty < 1 {
		return 1
	}
	return qty
}

// parseNumericString strips everything except digits, separators, and sign
// before parsing, so "$4.50" and "RM 12.90" both coerce.
func parseNumericString(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	amount, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return amount
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
