package gemini

import (
	"StyleSnap-Backend/domain"
	"encoding/json"
	"errors"
	"testing"
)

func TestExtractJSONObjectCleanInput(t *testing.T) {
	in := `{"isReceipt":true,"data":{"total":10}}`
	got, err := ExtractJSONObject(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != in {
		t.Fatalf("expected idempotent extraction, got %q", got)
	}
}

func TestExtractJSONObjectCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"json fence", "```json\n{\"isReceipt\":false,\"reason\":\"blurry photo\"}\n```"},
		{"bare fence", "```\n{\"isReceipt\":false,\"reason\":\"blurry photo\"}\n```"},
		{"prose wrapped", "Here is the result:\n{\"isReceipt\":false,\"reason\":\"blurry photo\"}\nHope that helps!"},
	}

	want := map[string]interface{}{}
	if err := json.Unmarshal([]byte(`{"isReceipt":false,"reason":"blurry photo"}`), &want); err != nil {
		t.Fatal(err)
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			parsed := map[string]interface{}{}
			if err := json.Unmarshal([]byte(got), &parsed); err != nil {
				t.Fatalf("extracted span is not valid JSON: %v", err)
			}
			if parsed["reason"] != want["reason"] || parsed["isReceipt"] != want["isReceipt"] {
				t.Fatalf("got %v, want %v", parsed, want)
			}
		})
	}
}

func TestExtractJSONObjectNoObject(t *testing.T) {
	_, err := ExtractJSONObject("the image appears to be a cat, not a receipt")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
	var extractionErr *domain.ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected ExtractionError, got %T", err)
	}
	if extractionErr.Raw == "" {
		t.Fatal("expected raw text preserved for diagnostics")
	}
}

func TestExtractJSONObjectNestedBraces(t *testing.T) {
	in := "```json\n{\"data\":{\"items\":[{\"name\":\"Coffee\"}]}}\n```"
	got, err := ExtractJSONObject(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parsed := map[string]interface{}{}
	if err := json.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("extracted span is not valid JSON: %v", err)
	}
}
