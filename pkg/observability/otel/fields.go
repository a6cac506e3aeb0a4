package otel

import (
	"fmt"

	"github.com/JailtonJunior94/eventkit-go/pkg/observability"

	"go.opentelemetry.io/otel/attribute"
)

// attributesFrom maps facade fields onto OTel attributes for spans and
// metric points. Empty input yields nil so callers can skip the
// WithAttributes option entirely.
func attributesFrom(fields []observability.Field) []attribute.KeyValue {
	if len(fields) == 0 {
		return nil
	}

	attrs := make([]attribute.KeyValue, len(fields))
	for i, field := range fields {
		attrs[i] = attributeFrom(field)
	}
	return attrs
}

func attributeFrom(field observability.Field) attribute.KeyValue {
	switch v := field.Value.(type) {
	case string:
		return attribute.String(field.Key, v)
	case int:
		return attribute.Int(field.Key, v)
	case int64:
		return attribute.Int64(field.Key, v)
	case float64:
		return attribute.Float64(field.Key, v)
	case bool:
		return attribute.Bool(field.Key, v)
	case error:
		return attribute.String(field.Key, v.Error())
	default:
		return attribute.String(field.Key, fmt.Sprint(v))
	}
}
