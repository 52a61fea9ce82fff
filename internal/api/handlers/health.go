package handlers

import (
	"context"
	"net/http"
	"time"
)

// Check reports the health of one dependency
type Check func(ctx context.Context) error

// HealthHandler reports service health
type HealthHandler struct {
	service string
	version string
	checks  map[string]Check
}

// NewHealthHandler creates a health handler. checks may be empty.
func NewHealthHandler(service, version string, checks map[string]Check) *HealthHandler {
	return &HealthHandler{service: service, version: version, checks: checks}
}

// Health returns 200 when every check passes, 503 otherwise
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			results[name] = err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	respondJSON(w, code, map[string]interface{}{
		"status":  status,
		"service": h.service,
		"version": h.version,
		"checks":  results,
	})
}
