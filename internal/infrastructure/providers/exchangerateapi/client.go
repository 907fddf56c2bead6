package exchangerateapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"fx-rate-service/internal/domain/entities"
	"fx-rate-service/internal/infrastructure/config"
	"fx-rate-service/internal/infrastructure/providers"
)

const (
	ProviderName   = "ExchangeRate-API"
	DefaultBaseURL = "https://v6.exchangerate-api.com/v6"

	resultSuccess = "success"
)

// pairResponse es la respuesta de /{key}/pair/{FROM}/{TO}
type pairResponse struct {
	Result         string  `json:"result"`
	ErrorType      string  `json:"error-type"`
	ConversionRate float64 `json:"conversion_rate"`
}

// latestResponse es la respuesta de /{key}/latest/{BASE}
type latestResponse struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// Client implementa RateProvider sobre ExchangeRate-API (proveedor primario)
type Client struct {
	*providers.Client
	baseURL string
	apiKey  string
}

// NewClient crea el cliente usando la configuración del proveedor
func NewClient(cfg config.ProviderConfig, timeout time.Duration) *Client {
	baseURL := strings.TrimRight(cfg.URL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		Client:  providers.NewClient(ProviderName, timeout),
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
	}
}

// GetRate obtiene la tasa de un par
func (c *Client) GetRate(ctx context.Context, from, to string) (*entities.ProviderQuote, error) {
	endpoint := fmt.Sprintf("%s/%s/pair/%s/%s",
		c.baseURL, url.PathEscape(c.apiKey), url.PathEscape(from), url.PathEscape(to))

	var resp pairResponse
	err := c.FetchJSON(ctx, "pair", endpoint, &resp, func() error {
		if resp.Result != resultSuccess {
			return fmt.Errorf("%w: %s", providers.ErrUpstreamRejected, resp.ErrorType)
		}
		if resp.ConversionRate <= 0 {
			return fmt.Errorf("%w: missing conversion_rate for %s->%s", providers.ErrMalformedResponse, from, to)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &entities.ProviderQuote{
		Rate:      resp.ConversionRate,
		Timestamp: time.Now().UTC(),
	}, nil
}

// GetRates obtiene todas las tasas para una moneda base
func (c *Client) GetRates(ctx context.Context, base string) (*entities.ProviderRates, error) {
	endpoint := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, url.PathEscape(c.apiKey), url.PathEscape(base))

	var (
		resp  latestResponse
		rates map[string]float64
	)
	err := c.FetchJSON(ctx, "latest", endpoint, &resp, func() error {
		if resp.Result != resultSuccess {
			return fmt.Errorf("%w: %s", providers.ErrUpstreamRejected, resp.ErrorType)
		}
		rates = providers.PositiveRates(resp.ConversionRates)
		if len(rates) == 0 {
			return fmt.Errorf("%w: no usable conversion_rates for %s", providers.ErrMalformedResponse, base)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &entities.ProviderRates{
		Rates:     rates,
		Timestamp: time.Now().UTC(),
	}, nil
}
