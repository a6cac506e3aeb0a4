// Package busops provides an operational HTTP server for an event
// multicaster: health, readiness, and liveness probes, read-only listener
// introspection, and an optional prometheus metrics endpoint. It is
// deliberately read-only; publishing over HTTP would turn the in-process
// bus into a network transport.
package busops

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/JailtonJunior94/eventkit-go/pkg/events"
	"github.com/JailtonJunior94/eventkit-go/pkg/observability"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves the ops endpoints over a chi router.
type Server struct {
	router            chi.Router
	httpServer        *http.Server
	config            Config
	observability     observability.Observability
	multicaster       events.Multicaster
	healthChecks      map[string]HealthCheckFunc
	routeTimeouts     map[string]time.Duration
	customMiddlewares []func(http.Handler) http.Handler
	shutdownOnce      sync.Once
}

// New creates an ops server bound to the given multicaster.
func New(o11y observability.Observability, multicaster events.Multicaster, opts ...Option) (*Server, error) {
	if o11y == nil {
		return nil, fmt.Errorf("observability is required")
	}
	if multicaster == nil {
		return nil, fmt.Errorf("multicaster is required")
	}

	srv := &Server{
		config:        DefaultConfig(),
		observability: o11y,
		multicaster:   multicaster,
		healthChecks:  make(map[string]HealthCheckFunc),
		routeTimeouts: make(map[string]time.Duration),
	}

	for _, opt := range opts {
		opt(srv)
	}

	if err := srv.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}

	srv.router = chi.NewRouter()
	srv.registerMiddlewares()
	srv.registerEndpoints()

	srv.httpServer = &http.Server{
		Addr:         srv.config.Address,
		Handler:      srv.router,
		ReadTimeout:  srv.config.ReadTimeout,
		WriteTimeout: srv.config.WriteTimeout,
		IdleTimeout:  srv.config.IdleTimeout,
	}

	return srv, nil
}

// Router exposes the chi router so applications can mount extra routes
// before calling Start.
func (s *Server) Router() chi.Router {
	return s.router
}

// registerMiddlewares registers all middlewares in the correct order.
func (s *Server) registerMiddlewares() {
	s.router.Use(recoverMiddleware(s.observability))
	s.router.Use(requestIDMiddleware())
	s.router.Use(bodyLimitMiddleware(int64(s.config.BodyLimit)))

	if len(s.routeTimeouts) > 0 || s.config.ReadTimeout > 0 {
		s.router.Use(timeoutMiddleware(s.config.ReadTimeout, s.routeTimeouts))
	}

	s.router.Use(securityHeadersMiddleware())

	if s.config.EnableCORS {
		s.router.Use(corsMiddleware(s.config.CORSOrigins))
		s.observability.Logger().Info(context.Background(), "CORS enabled",
			observability.String("origins", s.config.CORSOrigins))
	}

	for _, middleware := range s.customMiddlewares {
		s.router.Use(middleware)
	}
}

// registerEndpoints registers the probe, introspection, and metrics routes.
func (s *Server) registerEndpoints() {
	if s.config.EnableHealthChecks {
		s.router.Get("/health", healthHandler(s.config, s.healthChecks, s.observability))
		s.router.Get("/ready", readyHandler(s.healthChecks))
		s.router.Get("/live", liveHandler())
		s.observability.Logger().Info(context.Background(), "health check endpoints enabled")
	}

	s.router.Get("/listeners", listenersHandler(s.multicaster))

	if s.config.EnableMetrics {
		s.router.Handle("/metrics", promhttp.Handler())
		s.observability.Logger().Info(context.Background(), "metrics endpoint enabled")
	}
}
