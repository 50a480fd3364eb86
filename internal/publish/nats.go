package publish

import (
	"context"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"git.home.luguber.info/inful/rendergate/internal/config"
	"git.home.luguber.info/inful/rendergate/internal/foundation/errors"
)

const connectTimeout = 5 * time.Second

// NATSPublisher publishes decision events on a NATS subject, through JetStream
// when a stream is configured.
type NATSPublisher struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
}

// NewNATSPublisher connects to NATS. With cfg.Stream set the stream is created
// or updated to capture cfg.Subject.
func NewNATSPublisher(ctx context.Context, cfg config.PublishConfig) (*NATSPublisher, error) {
	conn, err := nats.Connect(cfg.NATSURL, nats.Name("rendergate"), nats.Timeout(connectTimeout))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryTransport, "failed to connect to NATS").
			WithContext("url", cfg.NATSURL).Build()
	}

	p := &NATSPublisher{conn: conn, subject: cfg.Subject}
	if cfg.Stream != "" {
		js, err := jetstream.New(conn)
		if err != nil {
			conn.Close()
			return nil, errors.WrapError(err, errors.CategoryTransport, "failed to create JetStream context").Build()
		}
		if _, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:     cfg.Stream,
			Subjects: []string{cfg.Subject},
		}); err != nil {
			conn.Close()
			return nil, errors.WrapError(err, errors.CategoryTransport, "failed to ensure JetStream stream").
				WithContext("stream", cfg.Stream).Build()
		}
		p.js = js
	}

	slog.Info("NATS publisher initialized",
		"url", cfg.NATSURL,
		"subject", cfg.Subject,
		"stream", cfg.Stream)
	return p, nil
}

// Publish sends one event. The event ID doubles as the JetStream dedupe ID.
func (p *NATSPublisher) Publish(ctx context.Context, ev DecisionEvent) error {
	data, err := ev.Encode()
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode decision event").Build()
	}

	if p.js != nil {
		if _, err := p.js.Publish(ctx, p.subject, data, jetstream.WithMsgID(ev.ID)); err != nil {
			return errors.WrapError(err, errors.CategoryTransport, "failed to publish decision event").
				Retryable().WithContext("subject", p.subject).Build()
		}
		return nil
	}

	msg := nats.NewMsg(p.subject)
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, ev.ID)
	if err := p.conn.PublishMsg(msg); err != nil {
		return errors.WrapError(err, errors.CategoryTransport, "failed to publish decision event").
			Retryable().WithContext("subject", p.subject).Build()
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	if p == nil || p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}

// New returns the publisher described by cfg: NATS when enabled, otherwise a no-op.
func New(ctx context.Context, cfg config.PublishConfig) (Publisher, error) {
	if !cfg.Enabled {
		return NoopPublisher{}, nil
	}
	return NewNATSPublisher(ctx, cfg)
}
