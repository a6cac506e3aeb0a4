package observability

// Field is one structured attribute attached to a log line, a span, or a
// metric point. Providers type-switch on Value, so the typed constructors
// below are preferred over building Field literals.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Error wraps err under the conventional "error" key.
func Error(err error) Field {
	return Field{Key: "error", Value: err}
}

// Any carries a value no typed constructor covers. Providers fall back to
// their string formatting for it.
func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}
