package receipt

import (
	"StyleSnap-Backend/domain"
	"strings"
)

// knownCurrencyCodes is the fixed ISO 4217 allow-list. A detected code
// outside this list is treated as unknown (no conversion) rather than risking
// a bad rate lookup.
var knownCurrencyCodes = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "MYR": true, "SGD": true,
	"JPY": true, "CNY": true, "AUD": true, "CAD": true, "HKD": true,
	"INR": true, "THB": true, "IDR": true, "KRW": true, "PHP": true,
	"VND": true, "NZD": true, "CHF": true, "SAR": true, "AED": true,
	"TWD": true, "BND": true,
}

// symbolCandidates maps a currency symbol to its candidate codes, most
// common first. Matching is ordered: longer symbols are listed before the
// bare "$" so "S$" never resolves as USD.
var symbolCandidates = []struct {
	symbol string
	codes  []string
}{
	{"S$", []string{"SGD"}},
	{"A$", []string{"AUD"}},
	{"C$", []string{"CAD"}},
	{"HK$", []string{"HKD"}},
	{"NT$", []string{"TWD"}},
	{"RM", []string{"MYR"}},
	{"RP", []string{"IDR"}},
	{"$", []string{"USD", "CAD", "AUD", "SGD", "HKD"}},
	{"£", []string{"GBP"}},
	{"€", []string{"EUR"}},
	{"¥", []string{"JPY", "CNY"}},
	{"₹", []string{"INR"}},
	{"฿", []string{"THB"}},
	{"₩", []string{"KRW"}},
	{"₱", []string{"PHP"}},
	{"₫", []string{"VND"}},
}

// NormalizeCurrency maps whatever currency indicator the model reported to a
// canonical three-letter code, or "" when no conversion should be attempted.
// It never fails: an unrecognized indicator simply means "skip conversion".
//
// The context parameter carries disambiguation hints but is advisory only;
// an ambiguous symbol always resolves to its first candidate.
func NormalizeCurrency(raw string, _ domain.CurrencyContext) string {
	indicator := strings.ToUpper(strings.TrimSpace(raw))
	if indicator == "" {
		return ""
	}

	if knownCurrencyCodes[indicator] {
		return indicator
	}

	for _, entry := range symbolCandidates {
		if indicator == strings.ToUpper(entry.symbol) {
			return entry.codes[0]
		}
	}

	return ""
}
