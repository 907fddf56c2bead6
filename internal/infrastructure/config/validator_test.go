package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_DefaultConfigIsValid(t *testing.T) {
	require.NoError(t, NewValidator().Validate(GetDefaultConfig()))
}

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(c *Config)
		errorContains string
	}{
		{
			name:          "Inválido - puerto HTTP fuera de rango",
			mutate:        func(c *Config) { c.Server.Port = 70000 },
			errorContains: "invalid port",
		},
		{
			name:          "Inválido - gRPC en el mismo puerto que HTTP",
			mutate:        func(c *Config) { c.GRPC.Port = c.Server.Port },
			errorContains: "collides with http port",
		},
		{
			name:   "Válido - gRPC deshabilitado ignora el puerto",
			mutate: func(c *Config) { c.GRPC.Enabled = false; c.GRPC.Port = 0 },
		},
		{
			name:          "Inválido - backend de cache desconocido",
			mutate:        func(c *Config) { c.Cache.Backend = "memcached" },
			errorContains: "invalid cache backend",
		},
		{
			name:          "Inválido - TTL muy corto",
			mutate:        func(c *Config) { c.Cache.TTL = 10 * time.Millisecond },
			errorContains: "at least 1s",
		},
		{
			name:          "Inválido - TTL muy largo",
			mutate:        func(c *Config) { c.Cache.TTL = 25 * time.Hour },
			errorContains: "TTL too long",
		},
		{
			name:          "Inválido - redis sin host",
			mutate:        func(c *Config) { c.Cache.Redis.Host = "" },
			errorContains: "redis host cannot be empty",
		},
		{
			name:   "Válido - memoria no valida redis",
			mutate: func(c *Config) { c.Cache.Backend = "memory"; c.Cache.Redis.Host = "" },
		},
		{
			name:          "Inválido - URL primaria sin esquema http",
			mutate:        func(c *Config) { c.Providers.Primary.URL = "ftp://example.com" },
			errorContains: "must be http or https",
		},
		{
			name:          "Inválido - URL de fallback vacía",
			mutate:        func(c *Config) { c.Providers.Fallback.URL = "" },
			errorContains: "fallback url cannot be empty",
		},
		{
			name:          "Inválido - timeout de proveedor cero",
			mutate:        func(c *Config) { c.Providers.Timeout = 0 },
			errorContains: "provider timeout must be positive",
		},
		{
			name:          "Inválido - umbral de error mayor a 100",
			mutate:        func(c *Config) { c.Breaker.ErrorThreshold = 150 },
			errorContains: "error_threshold",
		},
		{
			name:          "Inválido - volumen mínimo cero",
			mutate:        func(c *Config) { c.Breaker.VolumeThreshold = 0 },
			errorContains: "volume_threshold",
		},
		{
			name:          "Inválido - reintentos cero",
			mutate:        func(c *Config) { c.Retry.MaxRetries = 0 },
			errorContains: "max_retries must be between 1-10",
		},
		{
			name:          "Inválido - cron de warmup",
			mutate:        func(c *Config) { c.Warmup.Schedule = "every now and then" },
			errorContains: "invalid warmup schedule",
		},
		{
			name:          "Inválido - moneda base de warmup",
			mutate:        func(c *Config) { c.Warmup.Bases = []string{"DOLLAR"} },
			errorContains: "invalid warmup base",
		},
		{
			name:          "Inválido - eventos sin brokers",
			mutate:        func(c *Config) { c.Events.Enabled = true; c.Events.Brokers = nil },
			errorContains: "brokers cannot be empty",
		},
		{
			name:          "Inválido - nivel de log",
			mutate:        func(c *Config) { c.Logging.Level = "trace" },
			errorContains: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(cfg)

			err := NewValidator().Validate(cfg)
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestRedisConfig_Addr(t *testing.T) {
	assert.Equal(t, "redis:6380", RedisConfig{Host: "redis", Port: 6380}.Addr())
}
