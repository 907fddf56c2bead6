package freecurrencyapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fx-rate-service/internal/domain/entities"
	"fx-rate-service/internal/infrastructure/config"
	"fx-rate-service/internal/infrastructure/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetRate(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		response    any
		expected    float64
		expectedErr error
	}{
		{
			name:       "success",
			statusCode: http.StatusOK,
			response:   map[string]any{"data": map[string]float64{"USD": 0.128}},
			expected:   0.128,
		},
		{
			name:        "target missing from data",
			statusCode:  http.StatusOK,
			response:    map[string]any{"data": map[string]float64{"EUR": 0.11}},
			expectedErr: providers.ErrMalformedResponse,
		},
		{
			name:        "validation error",
			statusCode:  http.StatusUnprocessableEntity,
			response:    map[string]any{"message": "The selected currencies is invalid."},
			expectedErr: providers.ErrUnexpectedStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/latest", r.URL.Path)
				assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
				assert.Equal(t, "GTQ", r.URL.Query().Get("base_currency"))
				assert.Equal(t, "USD", r.URL.Query().Get("currencies"))
				w.WriteHeader(tt.statusCode)
				_ = json.NewEncoder(w).Encode(tt.response)
			}))
			defer server.Close()

			client := NewClient(config.ProviderConfig{URL: server.URL + "/v1", APIKey: "test-key"}, time.Second)
			quote, err := client.GetRate(context.Background(), "GTQ", "USD")

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Equal(t, entities.ProviderStatusUnhealthy, client.HealthStatus())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, quote.Rate)
			assert.Equal(t, ProviderName, client.Name())
		})
	}
}

func TestClient_GetRates_OmitsCurrencies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("currencies"))
		assert.Equal(t, "EUR", r.URL.Query().Get("base_currency"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]float64{"USD": 1.087, "GBP": 0.858},
		})
	}))
	defer server.Close()

	client := NewClient(config.ProviderConfig{URL: server.URL, APIKey: "k"}, time.Second)
	rates, err := client.GetRates(context.Background(), "EUR")

	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"USD": 1.087, "GBP": 0.858}, rates.Rates)
}

func TestClient_GetRates_Unusable(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing data", body: `{}`},
		{name: "only non-positive rates", body: `{"data":{"USD":0,"GBP":-0.85}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(config.ProviderConfig{URL: server.URL, APIKey: "k"}, time.Second)
			rates, err := client.GetRates(context.Background(), "EUR")

			assert.Nil(t, rates)
			assert.ErrorIs(t, err, providers.ErrMalformedResponse)
		})
	}
}
