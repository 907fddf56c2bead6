package dto

// RateResponse represents the response from POST /v1/fx/rate.
// Provider carries a " (cached)" suffix when the rate was served from cache.
// @Description Exchange rate for a currency pair
type RateResponse struct {
	FromCurrency string  `json:"from_currency" example:"GTQ"`
	ToCurrency   string  `json:"to_currency" example:"USD"`
	Rate         float64 `json:"rate" example:"0.128"`
	Provider     string  `json:"provider" example:"ExchangeRate-API"`
	FromCache    bool    `json:"from_cache" example:"false"`
	Timestamp    string  `json:"timestamp" example:"2025-01-15T10:30:00.000Z"`
}

// ConvertResponse represents the response from POST /v1/fx/convert
// @Description Converted amount rounded to 2 decimals
type ConvertResponse struct {
	FromCurrency    string  `json:"from_currency" example:"GTQ"`
	ToCurrency      string  `json:"to_currency" example:"USD"`
	OriginalAmount  float64 `json:"original_amount" example:"100"`
	ConvertedAmount float64 `json:"converted_amount" example:"12.8"`
	Rate            float64 `json:"rate" example:"0.128"`
	Provider        string  `json:"provider" example:"ExchangeRate-API"`
	FromCache       bool    `json:"from_cache" example:"false"`
	Timestamp       string  `json:"timestamp" example:"2025-01-15T10:30:00.000Z"`
}

// RatesResponse represents the response from POST /v1/fx/rates
// @Description Rates from a base currency, filtered to the requested targets
type RatesResponse struct {
	BaseCurrency string             `json:"base_currency" example:"USD"`
	Rates        map[string]float64 `json:"rates"`
	Provider     string             `json:"provider" example:"FreeCurrencyAPI"`
	FromCache    bool               `json:"from_cache" example:"true"`
	Timestamp    string             `json:"timestamp" example:"2025-01-15T10:30:00.000Z"`
}

// HealthResponse represents the health check response
// @Description Health of the providers and the cache
type HealthResponse struct {
	Healthy                bool   `json:"healthy" example:"true"`
	PrimaryProviderStatus  string `json:"primary_provider_status" example:"healthy" enums:"healthy,unhealthy"`
	FallbackProviderStatus string `json:"fallback_provider_status" example:"healthy" enums:"healthy,unhealthy"`
	CacheStatus            string `json:"cache_status" example:"connected" enums:"connected,disconnected"`
	Timestamp              string `json:"timestamp" example:"2025-01-15T10:30:00.000Z"`
}

// ErrorResponse represents a standard error response for endpoints
// @Description Standard error response for endpoints
type ErrorResponse struct {
	Error   string `json:"error" example:"INVALID_PARAMETER"`
	Message string `json:"message,omitempty" example:"from_currency is required"`
	Code    string `json:"code,omitempty" example:"400"`
}

// NewErrorResponseWithCode creates an error response with code
func NewErrorResponseWithCode(error string, message string, code string) *ErrorResponse {
	return &ErrorResponse{
		Error:   error,
		Message: message,
		Code:    code,
	}
}
