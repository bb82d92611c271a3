package receipt

import (
	"StyleSnap-Backend/domain"
	"testing"
)

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"iso code passes through", "USD", "USD"},
		{"lowercase iso code", "myr", "MYR"},
		{"iso code with whitespace", " SGD ", "SGD"},
		{"unknown code skips conversion", "XYZ", ""},
		{"empty skips conversion", "", ""},
		{"ringgit symbol", "RM", "MYR"},
		{"singapore dollar symbol", "S$", "SGD"},
		{"hong kong dollar symbol", "HK$", "HKD"},
		{"pound symbol", "£", "GBP"},
		{"euro symbol", "€", "EUR"},
		{"baht symbol", "฿", "THB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCurrency(tt.raw, domain.CurrencyContext{})
			if got != tt.want {
				t.Errorf("NormalizeCurrency(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// Ambiguous symbols must resolve to the same code every time, no matter what
// disambiguation hints are attached.
func TestNormalizeCurrencyAmbiguousSymbolsDeterministic(t *testing.T) {
	contexts := []domain.CurrencyContext{
		{},
		{StoreLocation: "Sydney, Australia", Language: "en"},
		{StoreLocation: "Toronto, Canada"},
	}

	for _, ctx := range contexts {
		if got := NormalizeCurrency("$", ctx); got != "USD" {
			t.Errorf("NormalizeCurrency($, %+v) = %q, want USD", ctx, got)
		}
		if got := NormalizeCurrency("¥", ctx); got != "JPY" {
			t.Errorf("NormalizeCurrency(¥, %+v) = %q, want JPY", ctx, got)
		}
	}
}
