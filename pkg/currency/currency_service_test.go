package currency

import (
	"StyleSnap-Backend/domain"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestGetRateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/USD" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"result":"success","rates":{"MYR":4.5,"EUR":0.9}}`)
	}))
	defer srv.Close()

	svc := NewCurrencyServiceWithBaseURL(srv.URL, srv.Client(), zap.NewNop())
	rate, err := svc.GetRate(context.Background(), "USD", "MYR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 4.5 {
		t.Fatalf("expected rate 4.5, got %v", rate)
	}
}

func TestGetRateMissingCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":"success","rates":{"EUR":0.9}}`)
	}))
	defer srv.Close()

	svc := NewCurrencyServiceWithBaseURL(srv.URL, srv.Client(), zap.NewNop())
	_, err := svc.GetRate(context.Background(), "USD", "MYR")
	if !errors.Is(err, domain.ErrConversionUnavailable) {
		t.Fatalf("expected ErrConversionUnavailable, got %v", err)
	}
}

func TestGetRateSourceDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewCurrencyServiceWithBaseURL(srv.URL, srv.Client(), zap.NewNop())
	_, err := svc.GetRate(context.Background(), "USD", "MYR")
	if !errors.Is(err, domain.ErrConversionUnavailable) {
		t.Fatalf("expected ErrConversionUnavailable, got %v", err)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{4.505, 4.51},
		{4.504, 4.5},
		{0, 0},
		{10.999, 11},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
