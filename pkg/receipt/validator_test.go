package receipt

import (
	"StyleSnap-Backend/domain"
	"errors"
	"testing"
)

func TestParseExtractionTaggedVariants(t *testing.T) {
	t.Run("non receipt carries reason", func(t *testing.T) {
		_, err := ParseExtraction(`{"isReceipt": false, "reason": "blurry photo"}`)
		var notReceipt *domain.NotAReceiptError
		if !errors.As(err, &notReceipt) {
			t.Fatalf("expected NotAReceiptError, got %v", err)
		}
		if notReceipt.Reason != "blurry photo" {
			t.Errorf("expected reason %q, got %q", "blurry photo", notReceipt.Reason)
		}
	})

	t.Run("receipt without data is incomplete", func(t *testing.T) {
		_, err := ParseExtraction(`{"isReceipt": true}`)
		if !errors.Is(err, domain.ErrIncompleteReceipt) {
			t.Fatalf("expected ErrIncompleteReceipt, got %v", err)
		}
	})

	t.Run("malformed json is an extraction error", func(t *testing.T) {
		_, err := ParseExtraction(`{"isReceipt": true, "data":`)
		var extractionErr *domain.ExtractionError
		if !errors.As(err, &extractionErr) {
			t.Fatalf("expected ExtractionError, got %v", err)
		}
	})

	t.Run("valid receipt parses", func(t *testing.T) {
		result, err := ParseExtraction(`{
			"isReceipt": true,
			"data": {
				"storeName": "Kedai Runcit Ali",
				"date": "2026-08-30",
				"items": [{"name": "Milo", "price": 4.5, "quantity": 2}],
				"subtotal": 9.0,
				"tax": {"rate": 6, "amount": 0.54},
				"total": 9.54,
				"currency": "RM",
				"currencyConverted": false
			}
		}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.StoreName != "Kedai Runcit Ali" {
			t.Errorf("store name = %q", result.StoreName)
		}
		if len(result.Items) != 1 || result.Items[0].Quantity != 2 {
			t.Errorf("items = %+v", result.Items)
		}
		if result.Tax == nil || result.Tax.Amount != 0.54 {
			t.Errorf("tax = %+v", result.Tax)
		}
	})
}

func TestValidateAndCoerceIncomplete(t *testing.T) {
	tests := []struct {
		name string
		data rawReceiptData
	}{
		{
			name: "missing store name",
			data: rawReceiptData{
				Date:  "2026-08-30",
				Items: []rawItem{{Name: "Milo", Price: 4.5}},
				Total: 4.5,
			},
		},
		{
			name: "no items",
			data: rawReceiptData{
				StoreName: "Kedai Runcit Ali",
				Date:      "2026-08-30",
				Total:     4.5,
			},
		},
		{
			name: "missing total",
			data: rawReceiptData{
				StoreName: "Kedai Runcit Ali",
				Date:      "2026-08-30",
				Items:     []rawItem{{Name: "Milo", Price: 4.5}},
			},
		},
		{
			name: "missing date",
			data: rawReceiptData{
				StoreName: "Kedai Runcit Ali",
				Items:     []rawItem{{Name: "Milo", Price: 4.5}},
				Total:     4.5,
			},
		},
		{
			name: "item with empty name",
			data: rawReceiptData{
				StoreName: "Kedai Runcit Ali",
				Date:      "2026-08-30",
				Items:     []rawItem{{Name: "  ", Price: 4.5}},
				Total:     4.5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateAndCoerce(&tt.data)
			if !errors.Is(err, domain.ErrIncompleteReceipt) {
				t.Errorf("expected ErrIncompleteReceipt, got %v", err)
			}
		})
	}
}

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want float64
	}{
		{"plain number", 4.5, 4.5},
		{"numeric string", "4.50", 4.5},
		{"string with dollar symbol", "$4.50", 4.5},
		{"string with code prefix", "RM 12.90", 12.9},
		{"negative clamps to zero", -3.2, 0},
		{"negative string clamps to zero", "-3.20", 0},
		{"unparseable string", "free", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coerceAmount(tt.in); got != tt.want {
				t.Errorf("coerceAmount(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCoerceQuantity(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want int
	}{
		{"plain number", float64(3), 3},
		{"numeric string", "2", 2},
		{"missing defaults to one", nil, 1},
		{"zero bumps to one", float64(0), 1},
		{"garbage string defaults to one", "a few", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coerceQuantity(tt.in); got != tt.want {
				t.Errorf("coerceQuantity(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
