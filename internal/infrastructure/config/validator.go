package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"fx-rate-service/internal/domain/entities"

	"github.com/robfig/cron/v3"
)

// Validator valida la configuración cargada
type Validator struct{}

// NewValidator crea una nueva instancia del validador
func NewValidator() *Validator {
	return &Validator{}
}

// Validate valida toda la configuración
func (v *Validator) Validate(config *Config) error {
	if err := v.validateServer(config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := v.validateGRPC(config.GRPC, config.Server); err != nil {
		return fmt.Errorf("grpc config validation failed: %w", err)
	}

	if err := v.validateCache(config.Cache); err != nil {
		return fmt.Errorf("cache config validation failed: %w", err)
	}

	if err := v.validateProviders(config.Providers); err != nil {
		return fmt.Errorf("providers config validation failed: %w", err)
	}

	if err := v.validateBreaker(config.Breaker); err != nil {
		return fmt.Errorf("breaker config validation failed: %w", err)
	}

	if err := v.validateRetry(config.Retry); err != nil {
		return fmt.Errorf("retry config validation failed: %w", err)
	}

	if err := v.validateWarmup(config.Warmup); err != nil {
		return fmt.Errorf("warmup config validation failed: %w", err)
	}

	if err := v.validateEvents(config.Events); err != nil {
		return fmt.Errorf("events config validation failed: %w", err)
	}

	if err := v.validateLogging(config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	return nil
}

// validateServer valida la configuración del servidor
func (v *Validator) validateServer(config ServerConfig) error {
	if err := validatePort(config.Port); err != nil {
		return err
	}

	if config.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got: %v", config.ShutdownTimeout)
	}

	if config.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("shutdown_timeout too long: %v, max 5 minutes", config.ShutdownTimeout)
	}

	return nil
}

func (v *Validator) validateGRPC(config GRPCConfig, server ServerConfig) error {
	if !config.Enabled {
		return nil
	}

	if err := validatePort(config.Port); err != nil {
		return err
	}

	if config.Port == server.Port {
		return fmt.Errorf("grpc port %d collides with http port", config.Port)
	}

	return nil
}

// validateCache valida la configuración del cache
func (v *Validator) validateCache(config CacheConfig) error {
	validBackends := []string{"memory", "redis"}
	if !contains(validBackends, config.Backend) {
		return fmt.Errorf("invalid cache backend: %s, must be one of: %v", config.Backend, validBackends)
	}

	if config.TTL < time.Second {
		return fmt.Errorf("cache TTL must be at least 1s, got: %v", config.TTL)
	}

	if config.TTL > 24*time.Hour {
		return fmt.Errorf("cache TTL too long: %v, max 24 hours", config.TTL)
	}

	if strings.EqualFold(config.Backend, "redis") {
		return v.validateRedis(config.Redis)
	}

	return nil
}

// validateRedis valida la configuración de Redis
func (v *Validator) validateRedis(config RedisConfig) error {
	if config.Host == "" {
		return fmt.Errorf("redis host cannot be empty")
	}

	if err := validatePort(config.Port); err != nil {
		return fmt.Errorf("redis %w", err)
	}

	if config.DB < 0 || config.DB > 15 {
		return fmt.Errorf("invalid redis DB: %d, must be between 0-15", config.DB)
	}

	if config.MaxRetries < 0 {
		return fmt.Errorf("redis max_retries cannot be negative, got: %d", config.MaxRetries)
	}

	if config.MaxRetryBackoff < config.MinRetryBackoff {
		return fmt.Errorf("redis max_retry_backoff (%v) must be >= min_retry_backoff (%v)", config.MaxRetryBackoff, config.MinRetryBackoff)
	}

	return nil
}

// validateProviders valida los proveedores de tipos de cambio
func (v *Validator) validateProviders(config ProvidersConfig) error {
	if config.Timeout <= 0 {
		return fmt.Errorf("provider timeout must be positive, got: %v", config.Timeout)
	}

	if err := v.validateURL(config.Primary.URL, "primary url"); err != nil {
		return err
	}

	return v.validateURL(config.Fallback.URL, "fallback url")
}

// validateBreaker valida la configuración del circuit breaker
func (v *Validator) validateBreaker(config BreakerConfig) error {
	if config.Timeout <= 0 {
		return fmt.Errorf("breaker timeout must be positive, got: %v", config.Timeout)
	}

	if config.ErrorThreshold <= 0 || config.ErrorThreshold > 100 {
		return fmt.Errorf("breaker error_threshold must be in (0, 100], got: %v", config.ErrorThreshold)
	}

	if config.ResetTimeout <= 0 {
		return fmt.Errorf("breaker reset_timeout must be positive, got: %v", config.ResetTimeout)
	}

	if config.VolumeThreshold < 1 {
		return fmt.Errorf("breaker volume_threshold must be at least 1, got: %d", config.VolumeThreshold)
	}

	if config.RollingWindow < 0 {
		return fmt.Errorf("breaker rolling_window cannot be negative, got: %v", config.RollingWindow)
	}

	return nil
}

// validateRetry valida la configuración de reintentos
func (v *Validator) validateRetry(config RetryConfig) error {
	if config.MaxRetries < 1 || config.MaxRetries > 10 {
		return fmt.Errorf("max_retries must be between 1-10, got: %d", config.MaxRetries)
	}

	if config.BaseDelay < 0 || config.BaseDelay > 30*time.Second {
		return fmt.Errorf("retry base_delay must be between 0-30s, got: %v", config.BaseDelay)
	}

	return nil
}

// validateWarmup valida el cron y las monedas base del precalentamiento
func (v *Validator) validateWarmup(config WarmupConfig) error {
	if !config.Enabled {
		return nil
	}

	if _, err := cron.ParseStandard(config.Schedule); err != nil {
		return fmt.Errorf("invalid warmup schedule %q: %w", config.Schedule, err)
	}

	if len(config.Bases) == 0 {
		return fmt.Errorf("warmup bases cannot be empty when warmup is enabled")
	}

	for _, base := range config.Bases {
		if _, err := entities.NormalizeCurrency(base); err != nil {
			return fmt.Errorf("invalid warmup base: %w", err)
		}
	}

	return nil
}

func (v *Validator) validateEvents(config EventsConfig) error {
	if !config.Enabled {
		return nil
	}

	if len(config.Brokers) == 0 {
		return fmt.Errorf("events brokers cannot be empty when events are enabled")
	}

	for _, broker := range config.Brokers {
		if !strings.Contains(broker, ":") {
			return fmt.Errorf("invalid broker address: %s, expected host:port", broker)
		}
	}

	if config.Topic == "" {
		return fmt.Errorf("events topic cannot be empty")
	}

	return nil
}

// validateLogging valida la configuración de logging
func (v *Validator) validateLogging(config LoggingConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, config.Level) {
		return fmt.Errorf("invalid log level: %s, must be one of: %v", config.Level, validLevels)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, config.Format) {
		return fmt.Errorf("invalid log format: %s, must be one of: %v", config.Format, validFormats)
	}

	return nil
}

// validateURL valida que una URL sea válida para HTTP/HTTPS
func (v *Validator) validateURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid %s: %s, error: %v", fieldName, rawURL, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("invalid %s scheme: %s, must be http or https", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s must have a host", fieldName)
	}

	return nil
}

func validatePort(port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port: %d, must be between 1-65535", port)
	}
	return nil
}

// contains verifica si un slice contiene un elemento
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
