package receipt

import (
	"fmt"
	"strings"
)

// extractionPrompt is the rule-based instruction sent with every receipt
// image. The model must answer with a single JSON object and nothing else.
const extractionPrompt = `You are a receipt data extraction system. Analyze the attached image and respond ONLY with a single valid JSON object. No markdown formatting, no code fences, no explanations before or after the JSON.

If the image is NOT a purchase receipt (e.g. it is a random photo, a document, a menu, or too blurry to read), respond with:
{"isReceipt": false, "reason": "<short explanation why>"}

If the image IS a receipt, respond with:
{
  "isReceipt": true,
  "data": {
    "storeName": "<merchant name; use \"Unknown Store\" if unreadable>",
    "date": "<transaction date as YYYY-MM-DD; use today's date if unreadable>",
    "items": [{"name": "<item name>", "price": <number>, "quantity": <integer, omit or 1 if unclear>}],
    "subtotal": <number>,
    "tax": {"rate": <percentage number>, "amount": <number>},
    "discounts": [{"description": "<text>", "amount": <number>}],
    "total": <number>,
    "currency": "<currency symbol or code as printed, e.g. $, RM, EUR>",
    "currencyConverted": <true if the currency is NOT Malaysian Ringgit and amounts need conversion, else false>,
    "originalCurrency": "<ISO 4217 code if you can determine it, else empty string>",
    "category": "<one of: Food & Beverage, Groceries, Shopping, Transport, Entertainment, Health, Utilities, Other>",
    "storeLocation": "<city/country if printed, else empty string>",
    "language": "<language of the receipt text, else empty string>"
  }
}

EXTRACTION RULES:
- Extract every line item you can read. Item prices are the line totals as printed.
- All monetary values must be plain numbers without currency symbols.
- Omit the "tax" object entirely when no tax line is printed.
- Omit the "discounts" array entirely when no discount is printed.
- Never invent items, amounts, or dates that are not on the receipt.
- If a required value is unreadable, make the most reasonable best-effort reading rather than leaving it out.`

// taxReliefCategories is the fixed taxonomy scored by the secondary
// classification call.
var taxReliefCategories = []string{
	"lifestyle",
	"medical",
	"education",
	"sports equipment",
	"books and publications",
	"electronics",
	"childcare",
}

func buildTaxClassificationPrompt(storeName string, items []ExtractedItem) string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}

	return fmt.Sprintf(`You are a tax relief classifier. Given a purchase from "%s" with the following items:
%s

Decide whether this purchase qualifies for a personal income tax relief category. The only valid categories are: %s.

Respond ONLY with a single JSON object, no markdown, no explanations:
{"category": "<one of the valid categories, or null if none applies>"}`,
		storeName,
		"- "+strings.Join(names, "\n- "),
		strings.Join(taxReliefCategories, ", "),
	)
}
