// Package publish announces render decisions to downstream consumers over NATS.
package publish
