package busops

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/JailtonJunior94/eventkit-go/pkg/observability"
	"github.com/JailtonJunior94/eventkit-go/pkg/responses"
)

// HealthCheckFunc is a function type for health checks. The context may
// carry a timeout, so implementations should respect ctx.Done().
type HealthCheckFunc func(ctx context.Context) error

// HealthStatus represents the overall health status of the service.
type HealthStatus struct {
	Status      string                 `json:"status"`
	Service     string                 `json:"service"`
	Version     string                 `json:"version"`
	Environment string                 `json:"environment"`
	Timestamp   time.Time              `json:"timestamp"`
	Checks      map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult represents the result of a single health check.
type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// executeHealthChecks runs all health checks in parallel with a
// concurrency cap, returning the per-check results and whether any failed.
func executeHealthChecks(
	ctx context.Context,
	checks map[string]HealthCheckFunc,
	timeout time.Duration,
	maxConcurrent int,
) (map[string]CheckResult, bool) {
	if len(checks) == 0 {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	semaphore := make(chan struct{}, maxConcurrent)

	results := make(map[string]CheckResult)
	var mu sync.Mutex
	var wg sync.WaitGroup
	hasErrors := false

	for name, checkFunc := range checks {
		wg.Add(1)

		go func(checkName string, fn HealthCheckFunc) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			case <-ctx.Done():
				mu.Lock()
				results[checkName] = CheckResult{Status: "unhealthy", Error: "timeout"}
				hasErrors = true
				mu.Unlock()
				return
			}

			err := fn(ctx)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				results[checkName] = CheckResult{Status: "unhealthy", Error: err.Error()}
				hasErrors = true
				return
			}

			results[checkName] = CheckResult{Status: "healthy"}
		}(name, checkFunc)
	}

	wg.Wait()

	return results, hasErrors
}

// healthHandler returns a handler for the /health endpoint with detailed
// check results.
func healthHandler(
	config Config,
	checks map[string]HealthCheckFunc,
	o11y observability.Observability,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const (
			healthCheckTimeout = 5 * time.Second
			maxConcurrent      = 10
		)

		checkResults, hasErrors := executeHealthChecks(
			r.Context(),
			checks,
			healthCheckTimeout,
			maxConcurrent,
		)

		if hasErrors {
			for name, result := range checkResults {
				if result.Status == "unhealthy" {
					o11y.Logger().Warn(r.Context(), "health check failed",
						observability.String("check", name),
						observability.String("error", result.Error),
					)
				}
			}
		}

		status := "healthy"
		statusCode := http.StatusOK

		if hasErrors {
			status = "unhealthy"
			statusCode = http.StatusServiceUnavailable
		}

		responses.JSON(w, statusCode, HealthStatus{
			Status:      status,
			Service:     config.ServiceName,
			Version:     config.ServiceVersion,
			Environment: config.Environment,
			Timestamp:   time.Now(),
			Checks:      checkResults,
		})
	}
}

// readyHandler returns a handler for the /ready endpoint.
func readyHandler(checks map[string]HealthCheckFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const (
			readinessCheckTimeout = 3 * time.Second
			maxConcurrent         = 10
		)

		_, hasErrors := executeHealthChecks(
			r.Context(),
			checks,
			readinessCheckTimeout,
			maxConcurrent,
		)

		if hasErrors {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("Service Unavailable"))
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// liveHandler returns a handler for the /live endpoint.
func liveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}
