package logging

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// StructuredLogger implementa la interfaz Logger sobre logrus
type StructuredLogger struct {
	config *LoggerConfig
	logger *logrus.Logger
}

// NewStructuredLogger crea un nuevo logger estructurado
func NewStructuredLogger(config *LoggerConfig) (*StructuredLogger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(config.Output)
	logger.SetLevel(logrusLevels[config.Level])
	logger.SetFormatter(newFormatter(config.Format))

	return &StructuredLogger{
		config: config,
		logger: logger,
	}, nil
}

func newFormatter(format LogFormat) logrus.Formatter {
	if format == FormatText {
		return &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		}
	}

	return &logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: FieldTimestamp,
			logrus.FieldKeyMsg:  FieldMessage,
		},
	}
}

// entry arma la entrada de logrus con los campos de servicio y de contexto
func (sl *StructuredLogger) entry(ctx context.Context, fields Fields) *logrus.Entry {
	data := make(logrus.Fields, len(fields)+5)
	data[FieldService] = sl.config.Service
	if sl.config.Version != "" {
		data[FieldVersion] = sl.config.Version
	}
	if sl.config.Environment != "" {
		data[FieldEnvironment] = sl.config.Environment
	}

	if requestID := GetRequestID(ctx); requestID != "" {
		data[FieldRequestID] = requestID
	}

	// Duración desde el inicio del request si está en el contexto
	if startTime := GetStartTime(ctx); !startTime.IsZero() {
		data[FieldDuration] = durationMs(time.Since(startTime))
	}

	for k, v := range fields {
		data[k] = v
	}

	return sl.logger.WithFields(data)
}

// Debug logs a debug message
func (sl *StructuredLogger) Debug(ctx context.Context, message string, fields Fields) {
	sl.entry(ctx, fields).Debug(message)
}

// Info logs an info message
func (sl *StructuredLogger) Info(ctx context.Context, message string, fields Fields) {
	sl.entry(ctx, fields).Info(message)
}

// Warn logs a warning message
func (sl *StructuredLogger) Warn(ctx context.Context, message string, fields Fields) {
	sl.entry(ctx, fields).Warn(message)
}

// Error logs an error message
func (sl *StructuredLogger) Error(ctx context.Context, message string, fields Fields) {
	sl.entry(ctx, fields).Error(message)
}

// InfoWithError logs an info message with error details
func (sl *StructuredLogger) InfoWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.entry(ctx, enrichWithError(fields, err)).Info(message)
}

// WarnWithError logs a warning message with error details
func (sl *StructuredLogger) WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.entry(ctx, enrichWithError(fields, err)).Warn(message)
}

// ErrorWithError logs an error message with error details
func (sl *StructuredLogger) ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.entry(ctx, enrichWithError(fields, err)).Error(message)
}

// enrichWithError copia los campos y agrega la información del error
func enrichWithError(fields Fields, err error) Fields {
	if err == nil {
		return fields
	}

	enriched := make(Fields, len(fields)+2)
	for k, v := range fields {
		enriched[k] = v
	}
	enriched[FieldError] = err.Error()
	enriched[FieldErrorType] = getErrorType(err)
	return enriched
}

// SetLevel establece el nivel de logging
func (sl *StructuredLogger) SetLevel(level LogLevel) {
	if lvl, ok := logrusLevels[level]; ok {
		sl.logger.SetLevel(lvl)
	}
}

// GetLevel retorna el nivel actual de logging
func (sl *StructuredLogger) GetLevel() LogLevel {
	current := sl.logger.GetLevel()
	for level, lvl := range logrusLevels {
		if lvl == current {
			return level
		}
	}
	return LevelInfo
}
