package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"fx-rate-service/internal/domain/entities"
	"fx-rate-service/internal/domain/interfaces"
	"fx-rate-service/internal/infrastructure/logging"
	"fx-rate-service/internal/infrastructure/metrics"
	"fx-rate-service/internal/infrastructure/repositories/cache"
	"fx-rate-service/internal/infrastructure/resilience"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultCacheTTL      = 300 * time.Second
	DefaultFlightTimeout = 30 * time.Second

	opRate  = "rate"
	opRates = "rates"

	tierIdentity = "identity"
	tierCache    = "cache"
	tierPrimary  = "primary"
	tierFallback = "fallback"
	tierDefault  = "default"
	tierNone     = "none"
)

// ProviderTier es un proveedor con su circuit breaker dedicado
type ProviderTier struct {
	Provider interfaces.RateProvider
	Breaker  *resilience.Breaker
}

// Options ajusta el comportamiento del orquestador
type Options struct {
	CacheTTL time.Duration
	// MaxRetries is the total number of attempts per provider tier
	MaxRetries int
	// RetryBaseDelay is the wait after the first failed attempt; it doubles afterwards
	RetryBaseDelay time.Duration
	// IdentityShortcut answers from == to with rate 1 without consulting any tier
	IdentityShortcut bool
	// SingleFlight collapses concurrent misses for the same cache key into one upstream lookup
	SingleFlight bool
	// FlightTimeout bounds a shared lookup, which no longer follows any single caller's cancellation
	FlightTimeout time.Duration
}

type tier struct {
	label string
	ProviderTier
}

// FxService orquesta cache -> primario -> fallback -> tabla por defecto
type FxService struct {
	cache   interfaces.RateCache
	tiers   []tier
	primary interfaces.RateProvider
	backup  interfaces.RateProvider
	opts    Options
	group   singleflight.Group
	now     func() time.Time
}

var _ interfaces.FxService = (*FxService)(nil)

// NewFxService crea el orquestador con los breakers que recibe del llamador
func NewFxService(rateCache interfaces.RateCache, primary, fallback ProviderTier, opts Options) *FxService {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.FlightTimeout <= 0 {
		opts.FlightTimeout = DefaultFlightTimeout
	}

	return &FxService{
		cache: rateCache,
		tiers: []tier{
			{label: tierPrimary, ProviderTier: primary},
			{label: tierFallback, ProviderTier: fallback},
		},
		primary: primary.Provider,
		backup:  fallback.Provider,
		opts:    opts,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// GetExchangeRate resuelve una tasa recorriendo el ladder de degradación
func (s *FxService) GetExchangeRate(ctx context.Context, fromCurrency, toCurrency string) (*entities.RateResult, error) {
	from, to, err := s.normalizePair(ctx, fromCurrency, toCurrency)
	if err != nil {
		return nil, err
	}

	if from == to && s.opts.IdentityShortcut {
		metrics.RecordRateRequest(opRate, tierIdentity)
		return entities.NewRateResult(from, to, 1, entities.IdentityProvider, s.now()), nil
	}

	key := cache.RateKey(from, to)
	if !s.opts.SingleFlight {
		return s.resolveRate(ctx, from, to, key)
	}

	v, err := s.shared(ctx, key, func(ctx context.Context) (any, error) {
		return s.resolveRate(ctx, from, to, key)
	})
	if err != nil {
		return nil, err
	}
	// cada llamador recibe su propia copia
	result := *v.(*entities.RateResult)
	return &result, nil
}

func (s *FxService) resolveRate(ctx context.Context, from, to, key string) (*entities.RateResult, error) {
	pair := from + "/" + to

	var entry entities.RateCacheEntry
	if s.cache.Get(ctx, key, &entry) {
		result := entities.NewRateResult(from, to, entry.Rate, entities.CachedProvider(entry.Provider), entry.Timestamp)
		result.FromCache = true
		s.served(ctx, opRate, tierCache, pair, result.Rate, result.Provider, true)
		return result, nil
	}

	for i, t := range s.tiers {
		if i > 0 {
			metrics.RecordFallbackActivation(opRate, t.label)
		}

		provider := t.Provider
		quote, err := resilience.Resilient(t.Breaker, s.retryPolicy(ctx, provider.Name(), opRate),
			func(ctx context.Context) (*entities.ProviderQuote, error) {
				return provider.GetRate(ctx, from, to)
			})(ctx)
		if err != nil {
			logging.Business().TierFailed(ctx, opRate, pair, provider.Name(), err)
			continue
		}

		s.cache.Set(ctx, key, entities.RateCacheEntry{
			Rate:      quote.Rate,
			Timestamp: quote.Timestamp,
			Provider:  provider.Name(),
		}, s.opts.CacheTTL)

		s.served(ctx, opRate, t.label, pair, quote.Rate, provider.Name(), false)
		return entities.NewRateResult(from, to, quote.Rate, provider.Name(), quote.Timestamp), nil
	}

	if errors.Is(ctx.Err(), context.Canceled) {
		return nil, ctx.Err()
	}

	metrics.RecordFallbackActivation(opRate, tierDefault)
	if rate, ok := DefaultRate(from, to); ok {
		logging.Business().DegradedModeUsed(ctx, opRate, pair, rate)
		metrics.RecordRateRequest(opRate, tierDefault)
		return entities.NewRateResult(from, to, rate, entities.DegradedProvider, s.now()), nil
	}

	metrics.RecordRateRequest(opRate, tierNone)
	logging.Error(ctx, "No exchange rate available from any tier", logging.Fields{
		logging.FieldOperation: opRate,
		logging.FieldPair:      pair,
	})
	return nil, entities.NoRateError(from, to)
}

// Convert obtiene la tasa y redondea amount*rate a 2 decimales (half away from zero)
func (s *FxService) Convert(ctx context.Context, fromCurrency, toCurrency string, amount float64) (*entities.ConvertResult, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		logging.Business().ValidationFailed(ctx, fmt.Sprintf("%v", amount), "amount must be a finite number >= 0")
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidAmount, amount)
	}

	rate, err := s.GetExchangeRate(ctx, fromCurrency, toCurrency)
	if err != nil {
		return nil, err
	}

	converted := amount * rate.Rate
	if math.IsInf(converted, 0) {
		logging.Business().ValidationFailed(ctx, fmt.Sprintf("%v", amount), "converted amount overflows")
		return nil, fmt.Errorf("%w: %v at rate %v overflows", entities.ErrInvalidAmount, amount, rate.Rate)
	}

	return &entities.ConvertResult{
		RateResult:      *rate,
		OriginalAmount:  amount,
		ConvertedAmount: RoundAmount(converted),
	}, nil
}

// RoundAmount redondea a 2 decimales alejándose de cero en el empate; NaN e Inf se devuelven tal cual
func RoundAmount(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// GetRates resuelve el mapa de tasas de base y lo filtra a targets cuando no está vacío
func (s *FxService) GetRates(ctx context.Context, baseCurrency string, targetCurrencies []string) (*entities.RatesResult, error) {
	base, err := entities.NormalizeCurrency(baseCurrency)
	if err != nil {
		logging.Business().ValidationFailed(ctx, baseCurrency, err.Error())
		return nil, err
	}

	targets, rejected := entities.NormalizeCurrencies(targetCurrencies)
	if len(rejected) > 0 {
		logging.Business().ValidationFailed(ctx, strings.Join(rejected, ","), "invalid target currencies omitted")
	}

	key := cache.RatesKey(base)

	var full *entities.RatesResult
	if s.opts.SingleFlight {
		v, err := s.shared(ctx, key, func(ctx context.Context) (any, error) {
			return s.resolveRates(ctx, base, key)
		})
		if err != nil {
			return nil, err
		}
		full = v.(*entities.RatesResult)
	} else {
		full, err = s.resolveRates(ctx, base, key)
		if err != nil {
			return nil, err
		}
	}

	result := *full
	result.Rates = filterRates(full.Rates, targets, len(targets)+len(rejected) == 0)
	return &result, nil
}

func (s *FxService) resolveRates(ctx context.Context, base, key string) (*entities.RatesResult, error) {
	var entry entities.RatesCacheEntry
	if s.cache.Get(ctx, key, &entry) {
		metrics.RecordRateRequest(opRates, tierCache)
		return &entities.RatesResult{
			Base:      base,
			Rates:     entry.Rates,
			Provider:  entities.CachedProvider(entry.Provider),
			FromCache: true,
			Timestamp: entry.Timestamp,
		}, nil
	}

	for i, t := range s.tiers {
		if i > 0 {
			metrics.RecordFallbackActivation(opRates, t.label)
		}

		provider := t.Provider
		rates, err := resilience.Resilient(t.Breaker, s.retryPolicy(ctx, provider.Name(), opRates),
			func(ctx context.Context) (*entities.ProviderRates, error) {
				return provider.GetRates(ctx, base)
			})(ctx)
		if err != nil {
			logging.Business().TierFailed(ctx, opRates, base, provider.Name(), err)
			continue
		}

		s.cache.Set(ctx, key, entities.RatesCacheEntry{
			Rates:     rates.Rates,
			Timestamp: rates.Timestamp,
			Provider:  provider.Name(),
		}, s.opts.CacheTTL)

		metrics.RecordRateRequest(opRates, t.label)
		return &entities.RatesResult{
			Base:      base,
			Rates:     rates.Rates,
			Provider:  provider.Name(),
			Timestamp: rates.Timestamp,
		}, nil
	}

	if errors.Is(ctx.Err(), context.Canceled) {
		return nil, ctx.Err()
	}

	metrics.RecordFallbackActivation(opRates, tierDefault)
	if rates, ok := DefaultRates(base); ok {
		logging.Business().DegradedModeUsed(ctx, opRates, base, rates[usd])
		metrics.RecordRateRequest(opRates, tierDefault)
		return &entities.RatesResult{
			Base:      base,
			Rates:     rates,
			Provider:  entities.DegradedProvider,
			Timestamp: s.now(),
		}, nil
	}

	metrics.RecordRateRequest(opRates, tierNone)
	return nil, fmt.Errorf("unable to obtain rates for %s: %w", base, entities.ErrNoRateAvailable)
}

// HealthCheck reporta sano si algún proveedor está sano y el cache conectado
func (s *FxService) HealthCheck(ctx context.Context) *entities.HealthStatus {
	primaryStatus := s.primary.HealthStatus()
	fallbackStatus := s.backup.HealthStatus()
	cacheStatus := s.cache.Status()

	healthy := (primaryStatus == entities.ProviderStatusHealthy || fallbackStatus == entities.ProviderStatusHealthy) &&
		cacheStatus == entities.CacheStatusConnected

	return &entities.HealthStatus{
		Healthy:        healthy,
		PrimaryStatus:  primaryStatus,
		FallbackStatus: fallbackStatus,
		CacheStatus:    cacheStatus,
	}
}

func (s *FxService) normalizePair(ctx context.Context, fromCurrency, toCurrency string) (string, string, error) {
	from, err := entities.NormalizeCurrency(fromCurrency)
	if err != nil {
		logging.Business().ValidationFailed(ctx, fromCurrency, err.Error())
		return "", "", err
	}
	to, err := entities.NormalizeCurrency(toCurrency)
	if err != nil {
		logging.Business().ValidationFailed(ctx, toCurrency, err.Error())
		return "", "", err
	}
	return from, to, nil
}

// shared runs fn once per key, detached from the first caller's cancellation and bounded by
// FlightTimeout. Each caller stops waiting when its own ctx ends.
func (s *FxService) shared(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	ch := s.group.DoChan(key, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.FlightTimeout)
		defer cancel()
		return fn(flightCtx)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *FxService) retryPolicy(ctx context.Context, provider, operation string) resilience.RetryPolicy {
	return resilience.RetryPolicy{
		MaxAttempts: s.opts.MaxRetries,
		BaseDelay:   s.opts.RetryBaseDelay,
		OnRetry: func(attempt int, err error) {
			metrics.RecordProviderRetry(provider, operation, attempt)
			logging.Warn(ctx, "Retrying rate provider", logging.Fields{
				logging.FieldProvider:  provider,
				logging.FieldOperation: operation,
				logging.FieldAttempt:   attempt,
				logging.FieldError:     err.Error(),
			})
		},
	}
}

func (s *FxService) served(ctx context.Context, operation, tierLabel, pair string, rate float64, provider string, cached bool) {
	metrics.RecordRateRequest(operation, tierLabel)
	logging.Business().RateServed(ctx, pair, rate, provider, cached)
}

// filterRates devuelve una copia restringida a targets, o completa si all
func filterRates(rates map[string]float64, targets []string, all bool) map[string]float64 {
	if all {
		out := make(map[string]float64, len(rates))
		for code, rate := range rates {
			out[code] = rate
		}
		return out
	}

	out := make(map[string]float64, len(targets))
	for _, code := range targets {
		if rate, ok := rates[code]; ok {
			out[code] = rate
		}
	}
	return out
}
