package currency

import (
	"StyleSnap-Backend/domain"
	"StyleSnap-Backend/internal/utils"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"context"

	"go.uber.org/zap"
)

type (
	// CurrencyService looks up live exchange rates from an external rate
	// source. A failed lookup always maps to ErrConversionUnavailable so the
	// caller can abort an entire conversion pass.
	CurrencyService interface {
		GetRate(ctx context.Context, from string, to string) (float64, error)
	}

	currencyService struct {
		baseURL    string
		httpClient *http.Client
		logger     *zap.Logger
	}
)

func NewCurrencyService(logger *zap.Logger) CurrencyService {
	return &currencyService{
		baseURL:    utils.GetConfig("EXCHANGE_RATE_API_URL"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// NewCurrencyServiceWithBaseURL is used by tests to point at a fake rate
// source.
func NewCurrencyServiceWithBaseURL(baseURL string, client *http.Client, logger *zap.Logger) CurrencyService {
	return &currencyService{
		baseURL:    baseURL,
		httpClient: client,
		logger:     logger,
	}
}

func (s *currencyService) GetRate(ctx context.Context, from string, to string) (float64, error) {
	url := fmt.Sprintf("%s/%s", s.baseURL, from)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, domain.ErrConversionUnavailable
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("rate source unreachable", zap.String("from", from), zap.Error(err))
		return 0, domain.ErrConversionUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		s.logger.Warn("rate source returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(bodyBytes)),
		)
		return 0, domain.ErrConversionUnavailable
	}

	var rateResp struct {
		Result string             `json:"result"`
		Rates  map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rateResp); err != nil {
		return 0, domain.ErrConversionUnavailable
	}

	if rateResp.Result != "success" {
		return 0, domain.ErrConversionUnavailable
	}

	rate, ok := rateResp.Rates[to]
	if !ok || rate <= 0 {
		s.logger.Warn("no rate for currency pair",
			zap.String("from", from),
			zap.String("to", to),
		)
		return 0, domain.ErrConversionUnavailable
	}

	return rate, nil
}

// Round2 rounds a monetary amount to 2 decimal places, half away from zero.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
