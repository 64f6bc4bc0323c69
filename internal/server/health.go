package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
)

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	db    Pinger
	cache Pinger
	log   *slog.Logger
}

// NewHealthChecker checks db and, when cache is not nil, the revocation store.
func NewHealthChecker(db Pinger, cache Pinger, log *slog.Logger) *HealthChecker {
	return &HealthChecker{
		db:    db,
		cache: cache,
		log:   log,
	}
}

func (h *HealthChecker) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	h.log.DebugContext(req.Context(), "Performing health checks...")

	status := make(map[string]string)
	overallStatus := http.StatusOK

	if err := h.db.Ping(req.Context()); err != nil {
		status["database"] = "unavailable"
		overallStatus = http.StatusServiceUnavailable
		h.log.WarnContext(req.Context(), "Health check failed: DB ping", sl.Err(err))
	} else {
		status["database"] = "ok"
	}

	if h.cache != nil {
		if err := h.cache.Ping(req.Context()); err != nil {
			status["cache"] = "unavailable"
			overallStatus = http.StatusServiceUnavailable
			h.log.WarnContext(req.Context(), "Health check failed: cache ping", sl.Err(err))
		} else {
			status["cache"] = "ok"
		}
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(overallStatus)
	if err := json.NewEncoder(writer).Encode(status); err != nil {
		h.log.ErrorContext(req.Context(), "Failed to write health check response", sl.Err(err))
	}

	h.log.DebugContext(req.Context(), "Health checks completed", "status", overallStatus)
}
