package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(t *testing.T, level LogLevel) (*StructuredLogger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	cfg := NewConfig("fx-test", "test", "testing").WithLevel(level).WithOutput(buf)
	logger, err := NewStructuredLogger(cfg)
	require.NoError(t, err)
	return logger, buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestStructuredLogger_JSONOutput(t *testing.T) {
	logger, buf := newBufferLogger(t, LevelInfo)
	ctx := WithRequestID(context.Background(), "req-123")

	logger.Info(ctx, "rate served", Fields{FieldPair: "GTQ/USD"})

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "rate served", entry[FieldMessage])
	assert.Equal(t, "info", entry[FieldLevel])
	assert.Equal(t, "fx-test", entry[FieldService])
	assert.Equal(t, "req-123", entry[FieldRequestID])
	assert.Equal(t, "GTQ/USD", entry[FieldPair])
	assert.NotEmpty(t, entry[FieldTimestamp])
}

func TestStructuredLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(t, LevelWarn)
	ctx := context.Background()

	logger.Debug(ctx, "debug", nil)
	logger.Info(ctx, "info", nil)
	logger.Warn(ctx, "warn", nil)
	logger.Error(ctx, "error", nil)

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "warn", entries[0][FieldMessage])
	assert.Equal(t, "error", entries[1][FieldMessage])

	logger.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, logger.GetLevel())
}

func TestStructuredLogger_WithErrorDoesNotMutateFields(t *testing.T) {
	logger, buf := newBufferLogger(t, LevelInfo)
	fields := Fields{"k": "v"}

	logger.ErrorWithError(context.Background(), "failed", errors.New("boom"), fields)

	_, mutated := fields[FieldError]
	assert.False(t, mutated)

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0][FieldError])
	assert.Equal(t, "*errors.errorString", entries[0][FieldErrorType])
}

func TestDomainLogger_AddsDomain(t *testing.T) {
	logger, buf := newBufferLogger(t, LevelDebug)
	cacheLogger := NewCacheLogger(logger)

	cacheLogger.Hit(context.Background(), "fx:rate:GTQ:USD")
	cacheLogger.CacheError(context.Background(), CacheOpSet, "fx:rate:GTQ:USD", errors.New("down"))

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "cache", entries[0][FieldDomain])
	assert.Equal(t, true, entries[0][FieldCacheHit])
	assert.Equal(t, "cache", entries[1][FieldDomain])
	assert.Equal(t, "warning", entries[1][FieldLevel])
}

func TestLoggerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *LoggerConfig)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *LoggerConfig) {}},
		{name: "invalid level", mutate: func(c *LoggerConfig) { c.Level = "TRACE" }, wantErr: true},
		{name: "invalid format", mutate: func(c *LoggerConfig) { c.Format = "xml" }, wantErr: true},
		{name: "nil output", mutate: func(c *LoggerConfig) { c.Output = nil }, wantErr: true},
		{name: "empty service", mutate: func(c *LoggerConfig) { c.Service = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				var cfgErr *ConfigError
				assert.ErrorAs(t, err, &cfgErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLogLevelFromString(t *testing.T) {
	assert.Equal(t, LevelDebug, LogLevelFromString("DEBUG"))
	assert.Equal(t, LevelWarn, LogLevelFromString("warning"))
	assert.Equal(t, LevelError, LogLevelFromString("error"))
	assert.Equal(t, LevelInfo, LogLevelFromString("whatever"))
	assert.Equal(t, FormatText, LogFormatFromString("TEXT"))
	assert.Equal(t, FormatJSON, LogFormatFromString(""))
}

func TestEnsureRequestID(t *testing.T) {
	ctx, id := EnsureRequestID(context.Background(), "  corr-1 ")
	assert.Equal(t, "corr-1", id)
	assert.Equal(t, "corr-1", GetRequestID(ctx))

	ctx, id = EnsureRequestID(context.Background(), "")
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, GetRequestID(ctx))

	_, id = EnsureRequestID(context.Background(), strings.Repeat("x", 200))
	assert.Len(t, id, 36)
}
