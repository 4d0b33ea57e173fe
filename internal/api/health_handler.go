package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/justic/justic-api/internal/api/shared"
	"github.com/justic/justic-api/internal/platform/logger"
	"github.com/justic/justic-api/internal/redact"
)

// Checker reports whether a dependency is reachable.
type Checker func(ctx context.Context) error

const healthTimeout = 3 * time.Second

// HealthHandler serves the liveness and readiness endpoints.
type HealthHandler struct {
	checks map[string]Checker
}

// NewHealthHandler creates a HealthHandler running checks on every
// readiness request.
func NewHealthHandler(checks map[string]Checker) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}

// Health handles GET /health. It returns 503 naming the failed dependencies
// if any check fails.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	var failed []string
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			logger.FromContext(ctx).Error("health check failed",
				"dependency", name,
				"error", redact.Error(err))
			failed = append(failed, name)
		}
	}

	if len(failed) > 0 {
		sort.Strings(failed)
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Failed: failed})
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
