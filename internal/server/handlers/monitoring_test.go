package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/rendergate/internal/server/responses"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHandleHealthCheck(t *testing.T) {
	h := NewMonitoringHandlers(pingFunc(func(context.Context) error { return nil }), time.Now().Add(-time.Minute))
	rec := httptest.NewRecorder()
	h.HandleHealthCheck(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body responses.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "healthy", body.Status)
	require.GreaterOrEqual(t, body.Uptime, 60.0)
}

func TestHandleHealthCheckStoreDown(t *testing.T) {
	h := NewMonitoringHandlers(pingFunc(func(context.Context) error { return stderrors.New("database is closed") }), time.Now())
	rec := httptest.NewRecorder()
	h.HandleHealthCheck(rec, httptest.NewRequest(http.MethodGet, "/healthz?pretty=1", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body responses.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "unhealthy", body.Status)
	require.Equal(t, "database is closed", body.Error)
}
