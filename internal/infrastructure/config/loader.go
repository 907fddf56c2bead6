package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Loader handles configuration loading using Viper
type Loader struct {
	v        *viper.Viper
	envFiles []string
}

// NewLoader creates a new configuration loader instance
func NewLoader() *Loader {
	return &Loader{
		v:        viper.New(),
		envFiles: []string{".env.local", ".env"},
	}
}

// WithEnvFiles replaces the dotenv files read before the environment is consulted
func (l *Loader) WithEnvFiles(files ...string) *Loader {
	l.envFiles = files
	return l
}

// Load loads configuration from dotenv files, config.yaml and environment variables
func (l *Loader) Load() (*Config, error) {
	// 1. dotenv files never override variables already present in the environment
	if err := l.loadEnvFiles(); err != nil {
		return nil, err
	}

	// 2. Configure Viper
	l.setupViper()

	// 3. Read configuration
	if err := l.v.ReadInConfig(); err != nil {
		// If config.yaml doesn't exist, use only env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 4. Unmarshal over defaults
	config := GetDefaultConfig()
	if err := l.v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Env vars that need conversion (milliseconds, seconds, lists)
	if err := l.overrideWithEnvVars(config); err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFiles carga los archivos .env que existan
func (l *Loader) loadEnvFiles() error {
	for _, file := range l.envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}
	return nil
}

// setupViper configures Viper to read files and env vars
func (l *Loader) setupViper() {
	l.v.SetConfigName("config")
	l.v.SetConfigType("yaml")

	l.v.AddConfigPath("./configs")
	l.v.AddConfigPath("../configs")
	l.v.AddConfigPath(".")
	l.v.AddConfigPath("/etc/fx-rate-service")

	// Prefixed env vars: FX_SERVICE_SERVER_PORT
	l.v.AutomaticEnv()
	l.v.SetEnvPrefix("FX_SERVICE")
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	l.bindEnvVars()
}

// bindEnvVars maps the service's plain environment variables to configuration keys
func (l *Loader) bindEnvVars() {
	envMappings := map[string]string{
		"server.port":                "PORT",
		"server.shutdown_timeout":    "SHUTDOWN_TIMEOUT",
		"grpc.port":                  "GRPC_PORT",
		"grpc.enabled":               "GRPC_ENABLED",
		"cache.backend":              "CACHE_BACKEND",
		"cache.redis.host":           "REDIS_HOST",
		"cache.redis.port":           "REDIS_PORT",
		"cache.redis.password":       "REDIS_PASSWORD",
		"cache.redis.db":             "REDIS_DB",
		"cache.redis.max_retries":    "REDIS_MAX_RETRIES",
		"providers.primary.url":      "FX_PRIMARY_API_URL",
		"providers.primary.api_key":  "FX_PRIMARY_API_KEY",
		"providers.fallback.url":     "FX_FALLBACK_API_URL",
		"providers.fallback.api_key": "FX_FALLBACK_API_KEY",
		"breaker.error_threshold":    "CB_ERROR_THRESHOLD",
		"breaker.volume_threshold":   "CB_VOLUME_THRESHOLD",
		"retry.max_retries":          "FX_MAX_RETRIES",
		"business.identity_shortcut": "FX_IDENTITY_SHORTCUT",
		"business.single_flight":     "FX_SINGLE_FLIGHT",
		"warmup.enabled":             "WARMUP_ENABLED",
		"warmup.schedule":            "WARMUP_SCHEDULE",
		"events.enabled":             "EVENTS_ENABLED",
		"events.topic":               "KAFKA_BREAKER_TOPIC",
		"logging.level":              "LOG_LEVEL",
		"logging.format":             "LOG_FORMAT",
	}

	for configKey, envVar := range envMappings {
		_ = l.v.BindEnv(configKey, envVar)
	}
}

// durationEnvMappings son variables expresadas como enteros planos con su unidad
var durationEnvMappings = []struct {
	envVar string
	unit   time.Duration
	target func(c *Config) *time.Duration
}{
	{"FX_API_TIMEOUT_MS", time.Millisecond, func(c *Config) *time.Duration { return &c.Providers.Timeout }},
	{"FX_RETRY_BASE_DELAY_MS", time.Millisecond, func(c *Config) *time.Duration { return &c.Retry.BaseDelay }},
	{"CB_TIMEOUT_MS", time.Millisecond, func(c *Config) *time.Duration { return &c.Breaker.Timeout }},
	{"CB_RESET_TIMEOUT_MS", time.Millisecond, func(c *Config) *time.Duration { return &c.Breaker.ResetTimeout }},
	{"CB_ROLLING_WINDOW_MS", time.Millisecond, func(c *Config) *time.Duration { return &c.Breaker.RollingWindow }},
	{"REDIS_TTL_SECONDS", time.Second, func(c *Config) *time.Duration { return &c.Cache.TTL }},
}

// overrideWithEnvVars maneja casos especiales de env vars
func (l *Loader) overrideWithEnvVars(config *Config) error {
	for _, mapping := range durationEnvMappings {
		raw := strings.TrimSpace(os.Getenv(mapping.envVar))
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: expected an integer: %w", mapping.envVar, raw, err)
		}
		*mapping.target(config) = time.Duration(n) * mapping.unit
	}

	// Listas separadas por comas
	if bases := splitList(os.Getenv("WARMUP_BASES"), true); len(bases) > 0 {
		config.Warmup.Bases = bases
	}
	if brokers := splitList(os.Getenv("KAFKA_BROKERS"), false); len(brokers) > 0 {
		config.Events.Brokers = brokers
	}

	return nil
}

func splitList(raw string, upper bool) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if upper {
			item = strings.ToUpper(item)
		}
		out = append(out, item)
	}
	return out
}

// Load is a shortcut for NewLoader().Load() followed by validation
func Load() (*Config, error) {
	cfg, err := NewLoader().Load()
	if err != nil {
		return nil, err
	}
	if err := NewValidator().Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
