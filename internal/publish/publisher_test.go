package publish

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/rendergate/internal/config"
	"git.home.luguber.info/inful/rendergate/internal/foundation/errors"
	"git.home.luguber.info/inful/rendergate/internal/render"
	"git.home.luguber.info/inful/rendergate/internal/retry"
)

type capturePublisher struct {
	mu       sync.Mutex
	events   []DecisionEvent
	err      error
	failures int // transient failures before succeeding
	attempts int
	closed   bool
}

func (c *capturePublisher) Publish(_ context.Context, ev DecisionEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempts++
	if c.err != nil {
		return c.err
	}
	if c.failures > 0 {
		c.failures--
		return errors.TransportError("nats: timeout").Build()
	}
	c.events = append(c.events, ev)
	return nil
}

func (c *capturePublisher) Close() error {
	c.closed = true
	return nil
}

type publishCounter struct{ ok, failed int }

func (p *publishCounter) IncDecision(string)                    {}
func (p *publishCounter) ObserveDecisionDuration(time.Duration) {}
func (p *publishCounter) AddStepParseFailures(int)              {}
func (p *publishCounter) SetStoreUp(bool)                       {}
func (p *publishCounter) IncFixtureReload(bool)                 {}
func (p *publishCounter) IncPublish(success bool) {
	if success {
		p.ok++
	} else {
		p.failed++
	}
}

func TestDecisionEventEncoding(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	ev := NewDecisionEvent("thesis", "business_case", render.Decision{ShouldRender: true, Reason: render.ReasonIsMarkdown}, at)

	_, err := uuid.Parse(ev.ID)
	require.NoError(t, err)
	require.Equal(t, time.UTC, ev.DecidedAt.Location())

	data, err := ev.Encode()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "thesis", decoded["stage_slug"])
	require.Equal(t, "2025-03-01T11:00:00Z", decoded["decided_at"])
	require.Equal(t, map[string]any{"shouldRender": true, "reason": "is_markdown"}, decoded["decision"])
}

func TestReporterPublishes(t *testing.T) {
	pub := &capturePublisher{}
	rec := &publishCounter{}
	r := NewReporter(pub, rec)

	d := render.Decision{Reason: render.ReasonIsJSON}
	ev, err := r.Report(t.Context(), "thesis", "HeaderContext", d)
	require.NoError(t, err)
	require.Len(t, pub.events, 1)
	require.Equal(t, ev, pub.events[0])
	require.Equal(t, 1, rec.ok)

	require.NoError(t, r.Close())
	require.True(t, pub.closed)
}

func TestReporterPublishFailure(t *testing.T) {
	pub := &capturePublisher{err: stderrors.New("nats: connection closed")}
	rec := &publishCounter{}
	r := NewReporter(pub, rec)

	ev, err := r.Report(t.Context(), "thesis", "x", render.Decision{Reason: render.ReasonIsJSON})
	require.Error(t, err)
	require.NotEmpty(t, ev.ID)
	require.Equal(t, 1, rec.failed)
	require.Equal(t, 1, pub.attempts, "unclassified errors are not retried")
}

func TestReporterRetriesTransientFailures(t *testing.T) {
	pub := &capturePublisher{failures: 2}
	rec := &publishCounter{}
	r := NewReporter(pub, rec, WithRetryPolicy(retry.NewPolicy(config.RetryBackoffFixed, time.Millisecond, time.Millisecond, 2)))

	ev, err := r.Report(t.Context(), "thesis", "business_case", render.Decision{ShouldRender: true, Reason: render.ReasonIsMarkdown})
	require.NoError(t, err)
	require.Equal(t, 3, pub.attempts)
	require.Equal(t, ev.ID, pub.events[0].ID)
	require.Equal(t, 1, rec.ok)
}

func TestNewDisabledIsNoop(t *testing.T) {
	pub, err := New(t.Context(), config.PublishConfig{Enabled: false})
	require.NoError(t, err)
	require.IsType(t, NoopPublisher{}, pub)
	require.NoError(t, pub.Publish(t.Context(), DecisionEvent{}))
	require.NoError(t, pub.Close())
}

func TestNewNATSPublisherUnreachable(t *testing.T) {
	_, err := NewNATSPublisher(t.Context(), config.PublishConfig{
		Enabled: true,
		NATSURL: "nats://127.0.0.1:1",
		Subject: config.DefaultSubject,
	})
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryTransport))
}

func TestNilNATSPublisherClose(t *testing.T) {
	var p *NATSPublisher
	require.NoError(t, p.Close())
}
