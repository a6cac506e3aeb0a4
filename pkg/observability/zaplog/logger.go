// Package zaplog implements the observability.Logger interface on top of
// go.uber.org/zap, for services that want high-throughput structured
// logging without an OTLP log pipeline.
package zaplog

import (
	"context"
	"fmt"

	"github.com/JailtonJunior94/eventkit-go/pkg/observability"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger implements observability.Logger backed by a zap.Logger.
type Logger struct {
	zap *zap.Logger
}

// Config holds the logger configuration.
type Config struct {
	// Level is the minimum severity that gets logged. Default: info.
	Level observability.LogLevel

	// Format selects the encoder: text (console) or json. Default: json.
	Format observability.LogFormat

	// Development enables zap development mode (stack traces on warnings,
	// human-friendly defaults).
	Development bool
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() Config {
	return Config{
		Level:  observability.LogLevelInfo,
		Format: observability.LogFormatJSON,
	}
}

// Option configures the logger.
type Option func(*Config)

// WithLevel sets the minimum log level.
func WithLevel(level observability.LogLevel) Option {
	return func(c *Config) {
		c.Level = level
	}
}

// WithFormat sets the output format.
func WithFormat(format observability.LogFormat) Option {
	return func(c *Config) {
		c.Format = format
	}
}

// WithDevelopment enables zap development mode.
func WithDevelopment() Option {
	return func(c *Config) {
		c.Development = true
	}
}

// NewLogger creates a zap-backed logger.
func NewLogger(opts ...Option) (*Logger, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	zapConfig := zap.NewProductionConfig()
	if config.Development {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.Level = zap.NewAtomicLevelAt(convertLevel(config.Level))
	if config.Format == observability.LogFormatText {
		zapConfig.Encoding = "console"
	} else {
		zapConfig.Encoding = "json"
	}

	logger, err := zapConfig.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("building zap logger: %w", err)
	}

	return &Logger{zap: logger}, nil
}

// NewFromZap wraps an existing zap.Logger. Useful when the application
// already owns a configured zap instance.
func NewFromZap(logger *zap.Logger) *Logger {
	if logger == nil {
		panic("zap logger is required")
	}
	return &Logger{zap: logger}
}

// Sync flushes buffered log entries. Call it before process exit.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

// Debug logs a debug-level message with optional structured fields.
func (l *Logger) Debug(ctx context.Context, msg string, fields ...observability.Field) {
	l.zap.Debug(msg, convertFields(fields)...)
}

// Info logs an info-level message with optional structured fields.
func (l *Logger) Info(ctx context.Context, msg string, fields ...observability.Field) {
	l.zap.Info(msg, convertFields(fields)...)
}

// Warn logs a warning-level message with optional structured fields.
func (l *Logger) Warn(ctx context.Context, msg string, fields ...observability.Field) {
	l.zap.Warn(msg, convertFields(fields)...)
}

// Error logs an error-level message with optional structured fields.
func (l *Logger) Error(ctx context.Context, msg string, fields ...observability.Field) {
	l.zap.Error(msg, convertFields(fields)...)
}

// With creates a child logger carrying the additional fields.
func (l *Logger) With(fields ...observability.Field) observability.Logger {
	return &Logger{zap: l.zap.With(convertFields(fields)...)}
}

// convertLevel maps the facade level onto zap's.
func convertLevel(level observability.LogLevel) zapcore.Level {
	switch level {
	case observability.LogLevelDebug:
		return zapcore.DebugLevel
	case observability.LogLevelInfo:
		return zapcore.InfoLevel
	case observability.LogLevelWarn:
		return zapcore.WarnLevel
	case observability.LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// convertField converts an observability.Field to a zap.Field. This
// centralizes the conversion logic, mirroring the otel provider.
func convertField(field observability.Field) zap.Field {
	switch v := field.Value.(type) {
	case string:
		return zap.String(field.Key, v)
	case int:
		return zap.Int(field.Key, v)
	case int64:
		return zap.Int64(field.Key, v)
	case float64:
		return zap.Float64(field.Key, v)
	case bool:
		return zap.Bool(field.Key, v)
	case error:
		return zap.NamedError(field.Key, v)
	default:
		return zap.Any(field.Key, v)
	}
}

// convertFields converts multiple fields. Returns nil for empty slices to
// avoid unnecessary allocations.
func convertFields(fields []observability.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	zapFields := make([]zap.Field, len(fields))
	for i, field := range fields {
		zapFields[i] = convertField(field)
	}
	return zapFields
}
