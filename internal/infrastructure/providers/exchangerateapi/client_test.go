package exchangerateapi

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

func createMockServer(t *testing.T, expectedPath string, statusCode int, response any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, expectedPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		if response != nil {
			_ = json.NewEncoder(w).Encode(response)
		}
	}))
}

func newTestClient(serverURL string) *Client {
	return NewClient(config.ProviderConfig{URL: serverURL + "/v6/", APIKey: "test-key"}, time.Second)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(config.ProviderConfig{}, 0)

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, ProviderName, client.Name())
	assert.Equal(t, providers.DefaultTimeout, client.Timeout())
	assert.Equal(t, entities.ProviderStatusHealthy, client.HealthStatus())
}

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
			response:   map[string]any{"result": "success", "conversion_rate": 0.128},
			expected:   0.128,
		},
		{
			name:        "api error result",
			statusCode:  http.StatusOK,
			response:    map[string]any{"result": "error", "error-type": "unsupported-code"},
			expectedErr: providers.ErrUpstreamRejected,
		},
		{
			name:        "missing conversion rate",
			statusCode:  http.StatusOK,
			response:    map[string]any{"result": "success"},
			expectedErr: providers.ErrMalformedResponse,
		},
		{
			name:        "http error",
			statusCode:  http.StatusForbidden,
			response:    map[string]any{"result": "error", "error-type": "invalid-key"},
			expectedErr: providers.ErrUnexpectedStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := createMockServer(t, "/v6/test-key/pair/GTQ/USD", tt.statusCode, tt.response)
			defer server.Close()

			client := newTestClient(server.URL)
			before := time.Now().UTC()
			quote, err := client.GetRate(context.Background(), "GTQ", "USD")

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, quote)
				assert.Equal(t, entities.ProviderStatusUnhealthy, client.HealthStatus())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, quote.Rate)
			assert.False(t, quote.Timestamp.Before(before))
			assert.Equal(t, time.UTC, quote.Timestamp.Location())
			assert.Equal(t, entities.ProviderStatusHealthy, client.HealthStatus())
		})
	}
}

func TestClient_GetRates(t *testing.T) {
	server := createMockServer(t, "/v6/test-key/latest/USD", http.StatusOK, map[string]any{
		"result":           "success",
		"base_code":        "USD",
		"conversion_rates": map[string]float64{"USD": 1, "EUR": 0.92, "GTQ": 7.8},
	})
	defer server.Close()

	rates, err := newTestClient(server.URL).GetRates(context.Background(), "USD")

	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"USD": 1, "EUR": 0.92, "GTQ": 7.8}, rates.Rates)
}

func TestClient_GetRates_Unusable(t *testing.T) {
	tests := []struct {
		name     string
		response map[string]any
	}{
		{
			name:     "missing conversion rates",
			response: map[string]any{"result": "success"},
		},
		{
			name: "only non-positive rates",
			response: map[string]any{
				"result":           "success",
				"conversion_rates": map[string]float64{"EUR": 0, "GTQ": -7.8},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := createMockServer(t, "/v6/test-key/latest/USD", http.StatusOK, tt.response)
			defer server.Close()

			client := newTestClient(server.URL)
			rates, err := client.GetRates(context.Background(), "USD")

			assert.Nil(t, rates)
			assert.ErrorIs(t, err, providers.ErrMalformedResponse)
			assert.Equal(t, entities.ProviderStatusUnhealthy, client.HealthStatus())
		})
	}
}
