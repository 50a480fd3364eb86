package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "rendergate"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	decisions        *prom.CounterVec
	decisionDuration prom.Histogram
	parseFailures    prom.Counter
	publishes        *prom.CounterVec
	storeUp          prom.Gauge
	fixtureReloads   *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		decisions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "decisions_total",
			Help:      "Render decisions by reason",
		}, []string{"reason"}),
		decisionDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "decision_duration_seconds",
			Help:      "Time spent resolving one render decision",
			Buckets:   prom.DefBuckets,
		}),
		parseFailures: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "step_parse_failures_total",
			Help:      "Step outputs declarations that could not be decoded",
		}),
		publishes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "decision_publishes_total",
			Help:      "Decision events published by result",
		}, []string{"result"}),
		storeUp: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "store_up",
			Help:      "1 when the last scheduled recipe store probe succeeded",
		}),
		fixtureReloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "fixture_reloads_total",
			Help:      "Fixture reloads triggered by file changes, by result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.decisions, pr.decisionDuration, pr.parseFailures, pr.publishes, pr.storeUp, pr.fixtureReloads)
	return pr
}

func (p *PrometheusRecorder) IncDecision(reason string) {
	if p == nil {
		return
	}
	p.decisions.WithLabelValues(reason).Inc()
}

func (p *PrometheusRecorder) ObserveDecisionDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.decisionDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddStepParseFailures(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.parseFailures.Add(float64(n))
}

func (p *PrometheusRecorder) IncPublish(success bool) {
	if p == nil {
		return
	}
	p.publishes.WithLabelValues(result(success)).Inc()
}

func (p *PrometheusRecorder) SetStoreUp(up bool) {
	if p == nil {
		return
	}
	if up {
		p.storeUp.Set(1)
		return
	}
	p.storeUp.Set(0)
}

func (p *PrometheusRecorder) IncFixtureReload(success bool) {
	if p == nil {
		return
	}
	p.fixtureReloads.WithLabelValues(result(success)).Inc()
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "failed"
}
