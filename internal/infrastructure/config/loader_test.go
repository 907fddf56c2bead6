package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_DefaultsWithoutEnvironment(t *testing.T) {
	cfg, err := NewLoader().WithEnvFiles().Load()
	require.NoError(t, err)

	assert.Equal(t, 300*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 5*time.Second, cfg.Providers.Timeout)
	assert.Equal(t, 2, cfg.Retry.MaxRetries)
	assert.Equal(t, float64(50), cfg.Breaker.ErrorThreshold)
	assert.Equal(t, 5, cfg.Breaker.VolumeThreshold)
	assert.Equal(t, 50055, cfg.GRPC.Port)
}

func TestLoader_PlainEnvironmentVariables(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_TTL_SECONDS", "120")
	t.Setenv("FX_API_TIMEOUT_MS", "2500")
	t.Setenv("FX_MAX_RETRIES", "4")
	t.Setenv("FX_PRIMARY_API_KEY", "primary-key")
	t.Setenv("FX_FALLBACK_API_URL", "https://fallback.example.com/v1")
	t.Setenv("CB_TIMEOUT_MS", "1500")
	t.Setenv("CB_ERROR_THRESHOLD", "40")
	t.Setenv("CB_RESET_TIMEOUT_MS", "10000")
	t.Setenv("CB_VOLUME_THRESHOLD", "8")
	t.Setenv("GRPC_PORT", "50100")
	t.Setenv("WARMUP_BASES", "usd, eur")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := NewLoader().WithEnvFiles().Load()
	require.NoError(t, err)

	assert.Equal(t, "cache.internal:6380", cfg.Cache.Redis.Addr())
	assert.Equal(t, 120*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 2500*time.Millisecond, cfg.Providers.Timeout)
	assert.Equal(t, 4, cfg.Retry.MaxRetries)
	assert.Equal(t, "primary-key", cfg.Providers.Primary.APIKey)
	assert.Equal(t, "https://fallback.example.com/v1", cfg.Providers.Fallback.URL)
	assert.Equal(t, 1500*time.Millisecond, cfg.Breaker.Timeout)
	assert.Equal(t, float64(40), cfg.Breaker.ErrorThreshold)
	assert.Equal(t, 10*time.Second, cfg.Breaker.ResetTimeout)
	assert.Equal(t, 8, cfg.Breaker.VolumeThreshold)
	assert.Equal(t, 50100, cfg.GRPC.Port)
	assert.Equal(t, []string{"USD", "EUR"}, cfg.Warmup.Bases)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.Brokers)
}

func TestLoader_InvalidMillisecondValue(t *testing.T) {
	t.Setenv("CB_TIMEOUT_MS", "3s")

	_, err := NewLoader().WithEnvFiles().Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CB_TIMEOUT_MS")
}

func TestLoader_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("FX_PRIMARY_API_KEY=from-file\nFX_FALLBACK_API_KEY=fallback-from-file\n"), 0o600))

	t.Setenv("FX_PRIMARY_API_KEY", "from-env")
	// registra la limpieza para que el valor cargado desde el archivo no se filtre
	t.Setenv("FX_FALLBACK_API_KEY", "")
	require.NoError(t, os.Unsetenv("FX_FALLBACK_API_KEY"))

	cfg, err := NewLoader().WithEnvFiles(envFile).Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Providers.Primary.APIKey)
	assert.Equal(t, "fallback-from-file", cfg.Providers.Fallback.APIKey)
}
