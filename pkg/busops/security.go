package busops

import (
	"errors"
	"net/http"
	"strings"
	"sync"
)

// securityHeaders holds the HTTP security headers applied to every
// response. The defaults follow OWASP recommendations; the CSP is
// restrictive since the ops surface serves only probes and JSON.
type securityHeaders struct {
	headers map[string]string
}

func defaultSecurityHeaders() securityHeaders {
	return securityHeaders{
		headers: map[string]string{
			"X-Frame-Options":           "DENY",
			"X-Content-Type-Options":    "nosniff",
			"X-XSS-Protection":          "1; mode=block",
			"Strict-Transport-Security": "max-age=31536000; includeSubDomains; preload",

			"Content-Security-Policy": "default-src 'self'; " +
				"script-src 'self'; " +
				"style-src 'self' 'unsafe-inline'; " +
				"img-src 'self' data: https:; " +
				"font-src 'self'; " +
				"connect-src 'self'; " +
				"frame-ancestors 'none'; " +
				"base-uri 'self'; " +
				"form-action 'self'",

			"Referrer-Policy": "strict-origin-when-cross-origin",

			"Permissions-Policy": "geolocation=(), camera=(), microphone=(), " +
				"payment=(), usb=(), magnetometer=(), gyroscope=(), " +
				"accelerometer=(), ambient-light-sensor=()",

			// Strip server identification.
			"X-Powered-By": "",
			"Server":       "",
		},
	}
}

// apply writes all security headers to the response. Call before the body.
func (s securityHeaders) apply(w http.ResponseWriter) {
	for k, v := range s.headers {
		if v != "" || k == "X-Powered-By" || k == "Server" {
			w.Header().Set(k, v)
		}
	}
}

// parseOrigins splits comma-separated origins and validates the
// configuration. A wildcard cannot be combined with other origins.
func parseOrigins(origins string) ([]string, error) {
	trimmed := strings.TrimSpace(origins)

	if trimmed == "" {
		return []string{}, nil
	}

	if trimmed == "*" {
		return []string{"*"}, nil
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	hasWildcard := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		if p == "*" {
			hasWildcard = true
		}

		result = append(result, p)
	}

	if hasWildcard && len(result) > 1 {
		return nil, errors.New("wildcard (*) cannot be combined with other origins")
	}

	return result, nil
}

// isOriginAllowed checks if the given origin is in the allowed list.
func isOriginAllowed(origin string, allowedOrigins []string) bool {
	if len(allowedOrigins) == 0 {
		return false
	}

	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		return true
	}

	for _, allowed := range allowedOrigins {
		if origin == allowed {
			return true
		}
	}

	return false
}

// responseWriter wraps http.ResponseWriter to track whether headers were
// written, which the panic recovery path needs to decide if an error
// response can still be sent.
type responseWriter struct {
	http.ResponseWriter
	mu            sync.Mutex
	headerWritten bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if !rw.headerWritten {
		rw.headerWritten = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if !rw.headerWritten {
		rw.headerWritten = true
	}

	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) headerSent() bool {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	return rw.headerWritten
}
