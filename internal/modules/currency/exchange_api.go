// README: exchangerate-api.com client used as the rate collaborator.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultExchangeRateBaseURL = "https://v6.exchangerate-api.com"

// ExchangeRateAPI fetches the latest rates for a base currency.
type ExchangeRateAPI struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type latestRatesResponse struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type,omitempty"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// NewExchangeRateAPI returns a client; an empty baseURL uses the public endpoint.
func NewExchangeRateAPI(apiKey, baseURL string) *ExchangeRateAPI {
	if baseURL == "" {
		baseURL = defaultExchangeRateBaseURL
	}
	return &ExchangeRateAPI{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *ExchangeRateAPI) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	if strings.TrimSpace(a.apiKey) == "" {
		return nil, fmt.Errorf("exchange rates: missing api key: %w", ErrRatesUnavailable)
	}

	url := fmt.Sprintf("%s/v6/%s/latest/%s", a.baseURL, a.apiKey, base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("exchange rates: build request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exchange rates: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("exchange rates: read response: %w", err)
	}

	var out latestRatesResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("exchange rates: unmarshal response: %w", err)
	}
	if out.Result != "success" {
		return nil, fmt.Errorf("exchange rates: result %q (%s): %w", out.Result, out.ErrorType, ErrRatesUnavailable)
	}
	return out.ConversionRates, nil
}
