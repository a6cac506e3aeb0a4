package busops

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/JailtonJunior94/eventkit-go/pkg/observability"

	"github.com/google/uuid"
)

type middleware func(http.Handler) http.Handler

type contextKey string

const requestIDKey contextKey = "requestID"

// requestID returns the ID assigned by requestIDMiddleware, or "" before it
// ran.
func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}

// recoverMiddleware turns handler panics into 500 responses and logs the
// stack. The wrapped writer tracks whether headers already went out; if
// they did, the response is beyond saving and only the log line remains.
func recoverMiddleware(o11y observability.Observability) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newResponseWriter(w)

			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				o11y.Logger().Error(r.Context(), "panic recovered",
					observability.Any("panic", recovered),
					observability.String("method", r.Method),
					observability.String("path", r.URL.Path),
					observability.String("remote_addr", r.RemoteAddr),
					observability.String("request_id", requestID(r)),
					observability.String("stack", string(debug.Stack())),
				)

				if rw.headerSent() {
					o11y.Logger().Warn(r.Context(),
						"cannot send panic error response: headers already sent",
						observability.String("request_id", requestID(r)))
					return
				}
				writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

// requestIDMiddleware honors an incoming X-Request-ID and mints one
// otherwise, echoing it on the response either way.
func requestIDMiddleware() middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set("X-Request-ID", id)

			ctx := context.WithValue(r.Context(), requestIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bodyLimitMiddleware caps request bodies. The reader cap applies even when
// Content-Length lies or is absent (chunked encoding); the early 413 is
// just a courtesy for honestly declared oversized bodies.
func bodyLimitMiddleware(maxBytes int64) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				writeErrorResponse(w, r, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytes))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// timeoutMiddleware runs the handler on its own goroutine and answers 408
// once the deadline passes. The handler keeps running until it observes
// ctx.Done(); the guarded writer makes sure whatever it writes afterwards
// is discarded instead of corrupting the timeout response.
func timeoutMiddleware(globalTimeout time.Duration, routeTimeouts map[string]time.Duration) middleware {
	timeoutFor := func(path string) time.Duration {
		if t, ok := routeTimeouts[path]; ok {
			return t
		}
		return globalTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeoutFor(r.URL.Path))
			defer cancel()

			guard := &guardedWriter{ResponseWriter: w}
			finished := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
					close(finished)
				}()
				next.ServeHTTP(guard, r.WithContext(ctx))
			}()

			select {
			case <-finished:
				// Handler panics are rethrown here so the recovery
				// middleware, which wraps this one, still sees them.
				select {
				case p := <-panicked:
					panic(p)
				default:
				}
			case <-ctx.Done():
				if guard.markTimedOut() {
					writeErrorResponse(w, r, http.StatusRequestTimeout, "Request timeout exceeded")
				}

				// Brief grace period for the handler to notice the
				// cancellation before the middleware returns.
				grace := time.NewTimer(100 * time.Millisecond)
				defer grace.Stop()
				select {
				case <-finished:
				case <-grace.C:
				}
			}
		})
	}
}

// guardedWriter suppresses handler writes that race a timeout response.
type guardedWriter struct {
	http.ResponseWriter
	mu       sync.Mutex
	written  bool
	timedOut bool
}

// markTimedOut flips the writer into discard mode. It reports false when
// the handler already wrote, meaning no timeout response may be sent.
func (g *guardedWriter) markTimedOut() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.written {
		return false
	}
	g.written = true
	g.timedOut = true
	return true
}

func (g *guardedWriter) WriteHeader(code int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timedOut || g.written {
		return
	}
	g.written = true
	g.ResponseWriter.WriteHeader(code)
}

func (g *guardedWriter) Write(b []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	g.written = true
	return g.ResponseWriter.Write(b)
}

// securityHeadersMiddleware stamps the OWASP header set on every response.
func securityHeadersMiddleware() middleware {
	headers := defaultSecurityHeaders()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers.apply(w)
			next.ServeHTTP(w, r)
		})
	}
}

// corsMiddleware validates the Origin header against the configured list.
// Requests without an Origin bypass CORS entirely.
func corsMiddleware(origins string) middleware {
	allowed, err := parseOrigins(origins)
	if err != nil {
		panic(fmt.Sprintf("invalid CORS configuration: %v", err))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !isOriginAllowed(origin, allowed) {
				writeErrorResponse(w, r, http.StatusForbidden, "origin not allowed")
				return
			}

			setCORSHeaders(w.Header(), origin, allowed)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func setCORSHeaders(h http.Header, origin string, allowed []string) {
	// Credentials must never be allowed together with a wildcard origin.
	if len(allowed) == 1 && allowed[0] == "*" {
		h.Set("Access-Control-Allow-Origin", "*")
	} else {
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
	}

	h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-ID")
	h.Set("Access-Control-Max-Age", "3600")
}
