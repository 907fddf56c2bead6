package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	GRPC      GRPCConfig      `yaml:"grpc" mapstructure:"grpc"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Providers ProvidersConfig `yaml:"providers" mapstructure:"providers"`
	Breaker   BreakerConfig   `yaml:"breaker" mapstructure:"breaker"`
	Retry     RetryConfig     `yaml:"retry" mapstructure:"retry"`
	Business  BusinessConfig  `yaml:"business" mapstructure:"business"`
	Warmup    WarmupConfig    `yaml:"warmup" mapstructure:"warmup"`
	Events    EventsConfig    `yaml:"events" mapstructure:"events"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" mapstructure:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// GRPCConfig contains gRPC server configuration
type GRPCConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	Port    int  `yaml:"port" mapstructure:"port"`
}

// CacheConfig contains cache system configuration
type CacheConfig struct {
	Backend string        `yaml:"backend" mapstructure:"backend"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Redis   RedisConfig   `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig contains Redis-specific configuration
type RedisConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`
	Port            int           `yaml:"port" mapstructure:"port"`
	Password        string        `yaml:"password" mapstructure:"password"`
	DB              int           `yaml:"db" mapstructure:"db"`
	MaxRetries      int           `yaml:"max_retries" mapstructure:"max_retries"`
	MinRetryBackoff time.Duration `yaml:"min_retry_backoff" mapstructure:"min_retry_backoff"`
	MaxRetryBackoff time.Duration `yaml:"max_retry_backoff" mapstructure:"max_retry_backoff"`
	DialTimeout     time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
}

// Addr returns the host:port pair used to dial Redis
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ProvidersConfig contains the upstream rate provider configuration
type ProvidersConfig struct {
	// Timeout bounds every single HTTP call to a provider
	Timeout  time.Duration  `yaml:"timeout" mapstructure:"timeout"`
	Primary  ProviderConfig `yaml:"primary" mapstructure:"primary"`
	Fallback ProviderConfig `yaml:"fallback" mapstructure:"fallback"`
}

// ProviderConfig contains one provider's endpoint and credentials
type ProviderConfig struct {
	URL    string `yaml:"url" mapstructure:"url"`
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
}

// BreakerConfig contains circuit breaker configuration shared by both providers
type BreakerConfig struct {
	Timeout         time.Duration `yaml:"timeout" mapstructure:"timeout"`
	ErrorThreshold  float64       `yaml:"error_threshold" mapstructure:"error_threshold"`
	ResetTimeout    time.Duration `yaml:"reset_timeout" mapstructure:"reset_timeout"`
	VolumeThreshold int           `yaml:"volume_threshold" mapstructure:"volume_threshold"`
	RollingWindow   time.Duration `yaml:"rolling_window" mapstructure:"rolling_window"`
}

// RetryConfig contains retry-with-backoff configuration
type RetryConfig struct {
	MaxRetries int           `yaml:"max_retries" mapstructure:"max_retries"`
	BaseDelay  time.Duration `yaml:"base_delay" mapstructure:"base_delay"`
}

// BusinessConfig contains orchestrator behaviour switches
type BusinessConfig struct {
	IdentityShortcut bool `yaml:"identity_shortcut" mapstructure:"identity_shortcut"`
	SingleFlight     bool `yaml:"single_flight" mapstructure:"single_flight"`
}

// WarmupConfig contiene la configuración del precalentamiento del cache
type WarmupConfig struct {
	Enabled  bool     `yaml:"enabled" mapstructure:"enabled"`
	Schedule string   `yaml:"schedule" mapstructure:"schedule"`
	Bases    []string `yaml:"bases" mapstructure:"bases"`
}

// EventsConfig contiene la configuración de publicación de eventos del breaker
type EventsConfig struct {
	Enabled bool     `yaml:"enabled" mapstructure:"enabled"`
	Brokers []string `yaml:"brokers" mapstructure:"brokers"`
	Topic   string   `yaml:"topic" mapstructure:"topic"`
}

// LoggingConfig contains logging system configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 30 * time.Second,
		},
		GRPC: GRPCConfig{
			Enabled: true,
			Port:    50055,
		},
		Cache: CacheConfig{
			Backend: "redis",
			TTL:     300 * time.Second,
			Redis: RedisConfig{
				Host:            "localhost",
				Port:            6379,
				Password:        "",
				DB:              0,
				MaxRetries:      3,
				MinRetryBackoff: 100 * time.Millisecond,
				MaxRetryBackoff: 3 * time.Second,
				DialTimeout:     5 * time.Second,
			},
		},
		Providers: ProvidersConfig{
			Timeout: 5000 * time.Millisecond,
			Primary: ProviderConfig{
				URL: "https://v6.exchangerate-api.com/v6",
			},
			Fallback: ProviderConfig{
				URL: "https://api.freecurrencyapi.com/v1",
			},
		},
		Breaker: BreakerConfig{
			Timeout:         3000 * time.Millisecond,
			ErrorThreshold:  50,
			ResetTimeout:    30000 * time.Millisecond,
			VolumeThreshold: 5,
			RollingWindow:   10 * time.Second,
		},
		Retry: RetryConfig{
			MaxRetries: 2,
			BaseDelay:  1000 * time.Millisecond,
		},
		Business: BusinessConfig{
			IdentityShortcut: true,
			SingleFlight:     true,
		},
		Warmup: WarmupConfig{
			Enabled:  true,
			Schedule: "@every 4m",
			Bases:    []string{"USD"},
		},
		Events: EventsConfig{
			Enabled: false,
			Brokers: []string{"localhost:9092"},
			Topic:   "fx.breaker.events",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
