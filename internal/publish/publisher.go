package publish

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/rendergate/internal/logfields"
	"git.home.luguber.info/inful/rendergate/internal/metrics"
	"git.home.luguber.info/inful/rendergate/internal/observability"
	"git.home.luguber.info/inful/rendergate/internal/render"
	"git.home.luguber.info/inful/rendergate/internal/retry"
)

// Publisher delivers decision events.
type Publisher interface {
	Publish(ctx context.Context, ev DecisionEvent) error
	Close() error
}

// NoopPublisher discards events (default when publishing is disabled).
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, DecisionEvent) error { return nil }
func (NoopPublisher) Close() error                                { return nil }

// Reporter stamps decisions as events and hands them to a Publisher.
type Reporter struct {
	pub      Publisher
	recorder metrics.Recorder
	policy   retry.Policy
	now      func() time.Time
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithRetryPolicy sets how transient publish failures are retried.
func WithRetryPolicy(p retry.Policy) ReporterOption {
	return func(r *Reporter) { r.policy = p }
}

// NewReporter wires a publisher and recorder. Nil arguments fall back to no-ops.
func NewReporter(pub Publisher, rec metrics.Recorder, opts ...ReporterOption) *Reporter {
	if pub == nil {
		pub = NoopPublisher{}
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	r := &Reporter{pub: pub, recorder: rec, policy: retry.DefaultPolicy(), now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report publishes the decision and returns the event that was sent. The event
// is returned even when delivery fails. Retries reuse the event ID.
func (r *Reporter) Report(ctx context.Context, stageSlug, outputKey string, d render.Decision) (DecisionEvent, error) {
	ev := NewDecisionEvent(stageSlug, outputKey, d, r.now())
	ctx = observability.WithDecisionID(ctx, ev.ID)
	err := r.policy.Do(ctx, func(ctx context.Context) error {
		return r.pub.Publish(ctx, ev)
	})
	r.recorder.IncPublish(err == nil)
	if err != nil {
		slog.WarnContext(ctx, "Failed to publish render decision",
			logfields.Stage(stageSlug),
			logfields.OutputKey(outputKey),
			logfields.Error(err))
		return ev, err
	}
	slog.DebugContext(ctx, "Published render decision",
		logfields.Stage(stageSlug),
		logfields.Reason(string(d.Reason)))
	return ev, nil
}

// Close releases the underlying publisher.
func (r *Reporter) Close() error {
	return r.pub.Close()
}
