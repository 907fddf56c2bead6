package freecurrencyapi

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
	ProviderName   = "FreeCurrencyAPI"
	DefaultBaseURL = "https://api.freecurrencyapi.com/v1"
)

// latestResponse es la respuesta de /latest
type latestResponse struct {
	Data map[string]float64 `json:"data"`
}

// Client implementa RateProvider sobre FreeCurrencyAPI (proveedor de fallback)
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

// GetRate obtiene la tasa de un par pidiendo solo la moneda destino
func (c *Client) GetRate(ctx context.Context, from, to string) (*entities.ProviderQuote, error) {
	var resp latestResponse
	err := c.FetchJSON(ctx, "latest_pair", c.latestURL(from, to), &resp, func() error {
		if rate, ok := resp.Data[to]; !ok || rate <= 0 {
			return fmt.Errorf("%w: missing %s in data", providers.ErrMalformedResponse, to)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &entities.ProviderQuote{
		Rate:      resp.Data[to],
		Timestamp: time.Now().UTC(),
	}, nil
}

// GetRates obtiene todas las tasas para una moneda base
func (c *Client) GetRates(ctx context.Context, base string) (*entities.ProviderRates, error) {
	var (
		resp  latestResponse
		rates map[string]float64
	)
	err := c.FetchJSON(ctx, "latest", c.latestURL(base, ""), &resp, func() error {
		rates = providers.PositiveRates(resp.Data)
		if len(rates) == 0 {
			return fmt.Errorf("%w: no usable data for %s", providers.ErrMalformedResponse, base)
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

func (c *Client) latestURL(base, currencies string) string {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("base_currency", base)
	if currencies != "" {
		params.Set("currencies", currencies)
	}
	return c.baseURL + "/latest?" + params.Encode()
}
