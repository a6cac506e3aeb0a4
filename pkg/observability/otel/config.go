package otel

import (
	"crypto/tls"
	"errors"
	"strings"

	"github.com/JailtonJunior94/eventkit-go/pkg/observability"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// OTLPProtocol selects the OTLP transport.
type OTLPProtocol string

const (
	// ProtocolGRPC exports over gRPC, conventionally port 4317.
	ProtocolGRPC OTLPProtocol = "grpc"
	// ProtocolHTTP exports over HTTP/protobuf, conventionally port 4318.
	ProtocolHTTP OTLPProtocol = "http"
)

// Config describes the provider. Zero values are filled by normalize, so a
// Config built by hand only needs the fields that differ from DefaultConfig.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string

	OTLPEndpoint string
	OTLPProtocol OTLPProtocol

	// Insecure allows plaintext OTLP connections. Rejected when
	// Environment names production.
	Insecure bool

	// TLSConfig overrides the system TLS defaults for the exporters.
	TLSConfig *tls.Config

	// TraceSampleRate is clamped to [0, 1]; 1 samples everything.
	TraceSampleRate float64

	LogLevel  observability.LogLevel
	LogFormat observability.LogFormat

	// ResourceAttributes are added to the resource alongside the service
	// identity.
	ResourceAttributes map[string]string
}

// DefaultConfig samples everything and targets a local gRPC collector,
// which suits development; production setups override the endpoint and
// usually the sample rate.
func DefaultConfig(serviceName string) *Config {
	return &Config{
		ServiceName:     serviceName,
		ServiceVersion:  "unknown",
		Environment:     "development",
		OTLPEndpoint:    "localhost:4317",
		OTLPProtocol:    ProtocolGRPC,
		TraceSampleRate: 1.0,
		LogLevel:        observability.LogLevelInfo,
		LogFormat:       observability.LogFormatJSON,
	}
}

func (c *Config) normalize() {
	switch strings.ToLower(string(c.OTLPProtocol)) {
	case "http", "http/protobuf":
		c.OTLPProtocol = ProtocolHTTP
	default:
		c.OTLPProtocol = ProtocolGRPC
	}

	if c.OTLPEndpoint == "" {
		c.OTLPEndpoint = "localhost:4317"
	}
	if c.LogLevel == "" {
		c.LogLevel = observability.LogLevelInfo
	}
	if c.LogFormat == "" {
		c.LogFormat = observability.LogFormatJSON
	}
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return errors.New("service name is required")
	}

	if c.Insecure {
		env := strings.ToLower(c.Environment)
		if env == "production" || env == "prod" {
			return errors.New("insecure OTLP connections are not allowed in production")
		}
	}

	if c.TLSConfig != nil && c.TLSConfig.MinVersion > 0 && c.TLSConfig.MinVersion < tls.VersionTLS12 {
		return errors.New("minimum TLS version must be 1.2 or higher")
	}

	return nil
}

func (c *Config) sampler() sdktrace.Sampler {
	switch {
	case c.TraceSampleRate >= 1.0:
		return sdktrace.AlwaysSample()
	case c.TraceSampleRate <= 0.0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(c.TraceSampleRate)
	}
}
