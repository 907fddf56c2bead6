package dto

import (
	"time"

	"fx-rate-service/internal/domain/entities"
	"fx-rate-service/pkg/utils"
)

// FxMapper maneja la conversión entre entidades del dominio y DTOs
type FxMapper struct{}

// NewFxMapper crea una nueva instancia del mapper
func NewFxMapper() *FxMapper {
	return &FxMapper{}
}

// ToRateResponse convierte un RateResult a DTO de respuesta
func (m *FxMapper) ToRateResponse(result *entities.RateResult) *RateResponse {
	return &RateResponse{
		FromCurrency: result.From,
		ToCurrency:   result.To,
		Rate:         result.Rate,
		Provider:     result.Provider,
		FromCache:    result.FromCache,
		Timestamp:    utils.FormatISO(result.Timestamp),
	}
}

// ToConvertResponse convierte un ConvertResult a DTO de respuesta
func (m *FxMapper) ToConvertResponse(result *entities.ConvertResult) *ConvertResponse {
	return &ConvertResponse{
		FromCurrency:    result.From,
		ToCurrency:      result.To,
		OriginalAmount:  result.OriginalAmount,
		ConvertedAmount: result.ConvertedAmount,
		Rate:            result.Rate,
		Provider:        result.Provider,
		FromCache:       result.FromCache,
		Timestamp:       utils.FormatISO(result.Timestamp),
	}
}

// ToRatesResponse convierte un RatesResult a DTO de respuesta; rates nunca es null
func (m *FxMapper) ToRatesResponse(result *entities.RatesResult) *RatesResponse {
	rates := result.Rates
	if rates == nil {
		rates = map[string]float64{}
	}

	return &RatesResponse{
		BaseCurrency: result.Base,
		Rates:        rates,
		Provider:     result.Provider,
		FromCache:    result.FromCache,
		Timestamp:    utils.FormatISO(result.Timestamp),
	}
}

// ToHealthResponse convierte el HealthStatus, sellado con checkedAt
func (m *FxMapper) ToHealthResponse(status *entities.HealthStatus, checkedAt time.Time) *HealthResponse {
	return &HealthResponse{
		Healthy:                status.Healthy,
		PrimaryProviderStatus:  status.PrimaryStatus,
		FallbackProviderStatus: status.FallbackStatus,
		CacheStatus:            status.CacheStatus,
		Timestamp:              utils.FormatISO(checkedAt),
	}
}
