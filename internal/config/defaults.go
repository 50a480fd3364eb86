package config

import "git.home.luguber.info/inful/rendergate/internal/recipestore"

const (
	DefaultHTTPAddr          = ":8080"
	DefaultReadHeaderTimeout = "5s"
	DefaultShutdownTimeout   = "10s"
	DefaultMetricsPath       = "/metrics"
	DefaultProbeInterval     = "30s"
	DefaultNATSURL           = "nats://127.0.0.1:4222"
	DefaultSubject           = "rendergate.decisions"
	DefaultRetryInitialDelay = "200ms"
	DefaultRetryMaxDelay     = "2s"
	DefaultRetryMaxRetries   = 2
)

func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = recipestore.MemoryPath
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = DefaultHTTPAddr
	}
	if cfg.HTTP.ReadHeaderTimeout == "" {
		cfg.HTTP.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if cfg.HTTP.ShutdownTimeout == "" {
		cfg.HTTP.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Health.ProbeInterval == "" {
		cfg.Health.ProbeInterval = DefaultProbeInterval
	}
	if cfg.Publish.NATSURL == "" {
		cfg.Publish.NATSURL = DefaultNATSURL
	}
	if cfg.Publish.Subject == "" {
		cfg.Publish.Subject = DefaultSubject
	}
	r := &cfg.Publish.Retry
	if r.Backoff == "" {
		r.Backoff = RetryBackoffLinear
	}
	if r.InitialDelay == "" {
		r.InitialDelay = DefaultRetryInitialDelay
	}
	if r.MaxDelay == "" {
		r.MaxDelay = DefaultRetryMaxDelay
	}
	if r.MaxRetries == nil {
		n := DefaultRetryMaxRetries
		r.MaxRetries = &n
	}
}
