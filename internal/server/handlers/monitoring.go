package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/rendergate/internal/foundation/errors"
	"git.home.luguber.info/inful/rendergate/internal/server/responses"
	"git.home.luguber.info/inful/rendergate/internal/version"
)

// Pinger checks store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MonitoringHandlers contains health endpoints.
type MonitoringHandlers struct {
	store        Pinger
	startTime    time.Time
	errorAdapter *errors.HTTPErrorAdapter
}

// NewMonitoringHandlers creates a new monitoring handlers instance.
func NewMonitoringHandlers(store Pinger, startTime time.Time) *MonitoringHandlers {
	return &MonitoringHandlers{
		store:        store,
		startTime:    startTime,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleHealthCheck reports 200 when the store answers a ping, 503 otherwise.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	health := &responses.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Resolved(),
		Uptime:    time.Since(h.startTime).Seconds(),
		Store:     "ok",
	}
	status := http.StatusOK
	if h.store != nil {
		if err := h.store.Ping(r.Context()); err != nil {
			health.Status = "unhealthy"
			health.Store = "unreachable"
			health.Error = errors.Detail(err)
			status = http.StatusServiceUnavailable
		}
	}

	if err := respond(w, r, status, health); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write health response").Build())
	}
}
