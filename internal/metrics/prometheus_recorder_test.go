package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncDecision("is_markdown")
	pr.IncDecision("is_markdown")
	pr.IncDecision("is_json")
	pr.ObserveDecisionDuration(3 * time.Millisecond)
	pr.AddStepParseFailures(2)
	pr.AddStepParseFailures(0)
	pr.IncPublish(true)
	pr.IncPublish(false)
	pr.SetStoreUp(true)
	pr.IncFixtureReload(true)

	require.InDelta(t, 2, testutil.ToFloat64(pr.decisions.WithLabelValues("is_markdown")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.decisions.WithLabelValues("is_json")), 0)
	require.InDelta(t, 2, testutil.ToFloat64(pr.parseFailures), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.publishes.WithLabelValues("failed")), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.InDelta(t, 1, testutil.ToFloat64(pr.storeUp), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.fixtureReloads.WithLabelValues("success")), 0)
	require.Len(t, mfs, 6)
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.IncDecision("is_json")
	pr.ObserveDecisionDuration(time.Second)
	pr.AddStepParseFailures(1)
	pr.IncPublish(true)
	pr.SetStoreUp(false)
	pr.IncFixtureReload(false)
}

func TestHTTPHandlerServesRegistry(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncDecision("no_active_recipe")

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), `rendergate_decisions_total{reason="no_active_recipe"} 1`))
}

var _ Recorder = NoopRecorder{}
var _ Recorder = (*PrometheusRecorder)(nil)
