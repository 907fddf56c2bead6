package entities

import "time"

const (
	ProviderStatusHealthy   = "healthy"
	ProviderStatusUnhealthy = "unhealthy"

	CacheStatusConnected    = "connected"
	CacheStatusDisconnected = "disconnected"

	// DegradedProvider marks results computed from the static default table.
	DegradedProvider = "DEFAULT (degraded)"
	// IdentityProvider marks from == to results that never reach a provider.
	IdentityProvider = "IDENTITY"

	cachedSuffix = " (cached)"
)

// RateResult is the multiplier such that amount(from) * Rate = amount(to).
type RateResult struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Rate      float64   `json:"rate"`
	Provider  string    `json:"provider"`
	FromCache bool      `json:"fromCache"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRateResult(from, to string, rate float64, provider string, timestamp time.Time) *RateResult {
	return &RateResult{
		From:      from,
		To:        to,
		Rate:      rate,
		Provider:  provider,
		Timestamp: timestamp,
	}
}

type RatesResult struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	Provider  string             `json:"provider"`
	FromCache bool               `json:"fromCache"`
	Timestamp time.Time          `json:"timestamp"`
}

type ConvertResult struct {
	RateResult
	OriginalAmount  float64 `json:"originalAmount"`
	ConvertedAmount float64 `json:"convertedAmount"`
}

type HealthStatus struct {
	Healthy        bool   `json:"healthy"`
	PrimaryStatus  string `json:"primaryStatus"`
	FallbackStatus string `json:"fallbackStatus"`
	CacheStatus    string `json:"cacheStatus"`
}

// ProviderQuote is what a rate provider returns for a single pair.
type ProviderQuote struct {
	Rate      float64
	Timestamp time.Time
}

// ProviderRates is what a rate provider returns for a base currency.
type ProviderRates struct {
	Rates     map[string]float64
	Timestamp time.Time
}

// RateCacheEntry is the payload stored under fx:rate:{FROM}:{TO}.
type RateCacheEntry struct {
	Rate      float64   `json:"rate"`
	Timestamp time.Time `json:"timestamp"`
	Provider  string    `json:"provider"`
}

// RatesCacheEntry is the payload stored under fx:rates:{BASE}.
type RatesCacheEntry struct {
	Rates     map[string]float64 `json:"rates"`
	Timestamp time.Time          `json:"timestamp"`
	Provider  string             `json:"provider"`
}

func CachedProvider(provider string) string {
	return provider + cachedSuffix
}
