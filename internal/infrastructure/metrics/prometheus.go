package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the FX rate service
var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fx_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fx_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// gRPC Metrics
	GRPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fx_grpc_requests_total",
			Help: "Total number of gRPC requests processed",
		},
		[]string{"method", "code"},
	)

	GRPCRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fx_grpc_request_duration_seconds",
			Help:    "gRPC request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// Cache Metrics
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fx_cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"}, // operation: get/set/delete, result: hit/miss/success/error/unavailable
	)

	CacheConnectionStatus = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fx_cache_connected",
			Help: "Cache connection status (1=connected, 0=disconnected)",
		},
	)

	CacheReconnectAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fx_cache_reconnect_attempts_total",
			Help: "Total number of cache reconnection probes",
		},
	)

	// Provider Metrics
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fx_provider_requests_total",
			Help: "Total number of upstream rate provider requests",
		},
		[]string{"provider", "operation", "status_code"},
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fx_provider_request_duration_seconds",
			Help:    "Upstream rate provider request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
		},
		[]string{"provider", "operation"},
	)

	ProviderRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fx_provider_retries_total",
			Help: "Total number of retry attempts against upstream providers",
		},
		[]string{"provider", "operation", "attempt"},
	)

	ProviderHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fx_provider_healthy",
			Help: "Provider health from the last call (1=healthy, 0=unhealthy)",
		},
		[]string{"provider"},
	)

	// Resilience Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fx_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half_open)",
		},
		[]string{"breaker"},
	)

	CircuitBreakerEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fx_circuit_breaker_events_total",
			Help: "Circuit breaker lifecycle events",
		},
		[]string{"breaker", "event"}, // event: open/half-open/closed/timeout/rejected/success/failure
	)

	FallbackActivationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fx_fallback_activations_total",
			Help: "Total number of times a lower degradation tier was consulted",
		},
		[]string{"operation", "tier"}, // tier: fallback/default
	)

	// Business Metrics
	RateRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fx_rate_requests_total",
			Help: "Total number of rate lookups by the tier that answered",
		},
		[]string{"operation", "tier"}, // tier: identity/cache/primary/fallback/default/none
	)

	// Background Metrics
	WarmupRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fx_cache_warmup_runs_total",
			Help: "Total number of scheduled cache warmup runs per base",
		},
		[]string{"base", "result"},
	)

	BreakerEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fx_breaker_events_published_total",
			Help: "Breaker state-change events handed to the event stream",
		},
		[]string{"result"}, // result: success/error/dropped
	)

	// Application Metrics
	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fx_application_info",
			Help: "Application information",
		},
		[]string{"version", "cache_backend"},
	)
)

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, path string, statusCode int, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordGRPCRequest records gRPC request metrics
func RecordGRPCRequest(method, code string, duration float64) {
	GRPCRequestsTotal.WithLabelValues(method, code).Inc()
	GRPCRequestDuration.WithLabelValues(method).Observe(duration)
}

// RecordCacheOperation records cache operation metrics
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheConnectionStatus updates the cache connectivity gauge
func UpdateCacheConnectionStatus(connected bool) {
	CacheConnectionStatus.Set(boolToFloat(connected))
}

// RecordCacheReconnectAttempt records one reconnection probe
func RecordCacheReconnectAttempt() {
	CacheReconnectAttempts.Inc()
}

// RecordProviderCall records upstream provider call metrics. statusCode 0 means transport failure.
func RecordProviderCall(provider, operation string, statusCode int, duration float64) {
	ProviderRequestsTotal.WithLabelValues(provider, operation, strconv.Itoa(statusCode)).Inc()
	ProviderRequestDuration.WithLabelValues(provider, operation).Observe(duration)
}

// RecordProviderRetry records upstream retry attempts
func RecordProviderRetry(provider, operation string, attempt int) {
	ProviderRetries.WithLabelValues(provider, operation, strconv.Itoa(attempt)).Inc()
}

// UpdateProviderHealth updates provider health gauge
func UpdateProviderHealth(provider string, healthy bool) {
	ProviderHealth.WithLabelValues(provider).Set(boolToFloat(healthy))
}

// UpdateCircuitBreakerState updates circuit breaker state
// state: 0=closed, 1=open, 2=half_open
func UpdateCircuitBreakerState(breaker string, state int) {
	CircuitBreakerState.WithLabelValues(breaker).Set(float64(state))
}

// RecordCircuitBreakerEvent records one breaker lifecycle event
func RecordCircuitBreakerEvent(breaker, event string) {
	CircuitBreakerEvents.WithLabelValues(breaker, event).Inc()
}

// RecordFallbackActivation records when a lower tier is consulted
func RecordFallbackActivation(operation, tier string) {
	FallbackActivationsTotal.WithLabelValues(operation, tier).Inc()
}

// RecordRateRequest records which tier answered a lookup
func RecordRateRequest(operation, tier string) {
	RateRequestsTotal.WithLabelValues(operation, tier).Inc()
}

// RecordWarmupRun records a warmup run for one base
func RecordWarmupRun(base string, success bool) {
	result := "error"
	if success {
		result = "success"
	}
	WarmupRunsTotal.WithLabelValues(base, result).Inc()
}

// RecordBreakerEventPublished records the outcome of publishing a breaker event
func RecordBreakerEventPublished(result string) {
	BreakerEventsPublished.WithLabelValues(result).Inc()
}

// SetApplicationInfo sets application information
func SetApplicationInfo(version, cacheBackend string) {
	ApplicationInfo.WithLabelValues(version, cacheBackend).Set(1)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
