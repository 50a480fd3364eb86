package config

import (
	"strings"
	"time"

	"git.home.luguber.info/inful/rendergate/internal/foundation/errors"
)

// normalize canonicalizes enumerations, rejecting values it does not recognize.
func normalize(cfg *Config) error {
	level, err := logLevelNormalizer.Parse(string(cfg.Logging.Level))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid logging.level").UserAction().Build()
	}
	cfg.Logging.Level = level

	format, err := logFormatNormalizer.Parse(string(cfg.Logging.Format))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid logging.format").UserAction().Build()
	}
	cfg.Logging.Format = format

	backoff, err := retryBackoffNormalizer.Parse(string(cfg.Publish.Retry.Backoff))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid publish.retry.backoff").UserAction().Build()
	}
	cfg.Publish.Retry.Backoff = backoff
	return nil
}

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Store.Path) == "" {
		return errors.ValidationError("store.path is required").Build()
	}
	for field, raw := range map[string]string{
		"http.read_header_timeout":    cfg.HTTP.ReadHeaderTimeout,
		"http.shutdown_timeout":       cfg.HTTP.ShutdownTimeout,
		"publish.retry.initial_delay": cfg.Publish.Retry.InitialDelay,
		"publish.retry.max_delay":     cfg.Publish.Retry.MaxDelay,
	} {
		if d, err := time.ParseDuration(raw); err != nil || d <= 0 {
			return errors.ValidationError("invalid duration").
				WithContext("field", field).
				WithContext("value", raw).Build()
		}
	}
	if d, err := time.ParseDuration(cfg.Health.ProbeInterval); err != nil || d < 0 {
		return errors.ValidationError("invalid duration").
			WithContext("field", "health.probe_interval").
			WithContext("value", cfg.Health.ProbeInterval).Build()
	}
	if cfg.Store.WatchFixture && cfg.Store.Fixture == "" {
		return errors.ValidationError("store.watch_fixture requires store.fixture").Build()
	}
	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return errors.ValidationError("metrics.path must start with /").
			WithContext("value", cfg.Metrics.Path).Build()
	}
	if n := cfg.Publish.Retry.MaxRetries; n != nil && *n < 0 {
		return errors.ValidationError("publish.retry.max_retries cannot be negative").Build()
	}
	if cfg.Publish.Enabled {
		if cfg.Publish.NATSURL == "" {
			return errors.ValidationError("publish.nats_url is required when publishing is enabled").Build()
		}
		if strings.ContainsAny(cfg.Publish.Subject, " \t*>") {
			return errors.ValidationError("publish.subject must be a literal NATS subject").
				WithContext("value", cfg.Publish.Subject).Build()
		}
	}
	return nil
}

// ReadHeaderTimeoutDuration returns the parsed header timeout. Validate guarantees it parses.
func (h HTTPConfig) ReadHeaderTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(h.ReadHeaderTimeout)
	return d
}

// ShutdownTimeoutDuration returns the parsed shutdown timeout.
func (h HTTPConfig) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(h.ShutdownTimeout)
	return d
}

// ProbeIntervalDuration returns the parsed probe interval; zero disables probing.
func (h HealthConfig) ProbeIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(h.ProbeInterval)
	return d
}
