package otel

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/JailtonJunior94/eventkit-go/pkg/observability"

	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/trace"
)

// bridgeLogger emits every entry twice: as a slog line on stdout for humans
// and as an OTLP log record for the collector. Entries written inside an
// active span get trace_id and span_id fields, which is how a delivery
// failure line is found from its publish trace.
type bridgeLogger struct {
	emitter otellog.Logger
	console *slog.Logger
	service string
	bound   []observability.Field
}

func newBridgeLogger(cfg *Config, emitter otellog.Logger) *bridgeLogger {
	opts := &slog.HandlerOptions{Level: slogLevels[cfg.LogLevel]}

	var handler slog.Handler
	if cfg.LogFormat == observability.LogFormatText {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &bridgeLogger{
		emitter: emitter,
		console: slog.New(handler),
		service: cfg.ServiceName,
	}
}

func (l *bridgeLogger) Debug(ctx context.Context, msg string, fields ...observability.Field) {
	l.log(ctx, slog.LevelDebug, otellog.SeverityDebug, msg, fields)
}

func (l *bridgeLogger) Info(ctx context.Context, msg string, fields ...observability.Field) {
	l.log(ctx, slog.LevelInfo, otellog.SeverityInfo, msg, fields)
}

func (l *bridgeLogger) Warn(ctx context.Context, msg string, fields ...observability.Field) {
	l.log(ctx, slog.LevelWarn, otellog.SeverityWarn, msg, fields)
}

func (l *bridgeLogger) Error(ctx context.Context, msg string, fields ...observability.Field) {
	l.log(ctx, slog.LevelError, otellog.SeverityError, msg, fields)
}

func (l *bridgeLogger) With(fields ...observability.Field) observability.Logger {
	return &bridgeLogger{
		emitter: l.emitter,
		console: l.console,
		service: l.service,
		bound:   append(append([]observability.Field(nil), l.bound...), fields...),
	}
}

func (l *bridgeLogger) log(ctx context.Context, level slog.Level, severity otellog.Severity, msg string, fields []observability.Field) {
	entry := make([]observability.Field, 0, len(l.bound)+len(fields)+3)
	entry = append(entry, l.bound...)
	entry = append(entry, fields...)

	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		entry = append(entry,
			observability.String("trace_id", sc.TraceID().String()),
			observability.String("span_id", sc.SpanID().String()),
		)
	}
	entry = append(entry, observability.String("service", l.service))

	attrs := make([]slog.Attr, len(entry))
	for i, field := range entry {
		attrs[i] = slogAttr(field)
	}
	l.console.LogAttrs(ctx, level, msg, attrs...)

	record := otellog.Record{}
	record.SetTimestamp(time.Now())
	record.SetBody(otellog.StringValue(msg))
	record.SetSeverity(severity)
	record.SetSeverityText(level.String())
	for _, field := range entry {
		record.AddAttributes(logAttr(field))
	}
	l.emitter.Emit(ctx, record)
}

var slogLevels = map[observability.LogLevel]slog.Level{
	observability.LogLevelDebug: slog.LevelDebug,
	observability.LogLevelInfo:  slog.LevelInfo,
	observability.LogLevelWarn:  slog.LevelWarn,
	observability.LogLevelError: slog.LevelError,
}

func slogAttr(field observability.Field) slog.Attr {
	switch v := field.Value.(type) {
	case string:
		return slog.String(field.Key, v)
	case int:
		return slog.Int(field.Key, v)
	case int64:
		return slog.Int64(field.Key, v)
	case float64:
		return slog.Float64(field.Key, v)
	case bool:
		return slog.Bool(field.Key, v)
	case error:
		return slog.String(field.Key, v.Error())
	default:
		return slog.Any(field.Key, v)
	}
}

func logAttr(field observability.Field) otellog.KeyValue {
	switch v := field.Value.(type) {
	case string:
		return otellog.String(field.Key, v)
	case int:
		return otellog.Int(field.Key, v)
	case int64:
		return otellog.Int64(field.Key, v)
	case float64:
		return otellog.Float64(field.Key, v)
	case bool:
		return otellog.Bool(field.Key, v)
	case error:
		return otellog.String(field.Key, v.Error())
	default:
		return otellog.String(field.Key, fmt.Sprint(v))
	}
}
