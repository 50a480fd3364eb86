package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/rendergate/internal/foundation/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, CurrentVersion, cfg.Version)
	require.Equal(t, ":memory:", cfg.Store.Path)
	require.Equal(t, LogLevelInfo, cfg.Logging.Level)
	require.Equal(t, LogFormatText, cfg.Logging.Format)
	require.Equal(t, DefaultHTTPAddr, cfg.HTTP.Addr)
	require.Equal(t, DefaultSubject, cfg.Publish.Subject)
	require.Equal(t, RetryBackoffLinear, cfg.Publish.Retry.Backoff)
	require.Equal(t, DefaultRetryMaxRetries, *cfg.Publish.Retry.MaxRetries)
	require.NoError(t, Validate(cfg))
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("RENDERGATE_TEST_DB", "/var/lib/rendergate/recipes.db")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: "1"
store:
  path: ${RENDERGATE_TEST_DB}
logging:
  level: DEBUG
  format: json
http:
  addr: 127.0.0.1:9000
metrics:
  enabled: true
publish:
  enabled: true
  subject: stages.decisions
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/var/lib/rendergate/recipes.db", cfg.Store.Path)
	require.Equal(t, LogLevelDebug, cfg.Logging.Level)
	require.Equal(t, LogFormatJSON, cfg.Logging.Format)
	require.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	require.Equal(t, "/metrics", cfg.Metrics.Path)
	require.Equal(t, "stages.decisions", cfg.Publish.Subject)
	require.Equal(t, DefaultNATSURL, cfg.Publish.NATSURL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		category errors.ErrorCategory
	}{
		{"unknown field", "stor:\n  path: x\n", errors.CategoryConfig},
		{"bad version", "version: \"2\"\n", errors.CategoryConfig},
		{"bad level", "logging:\n  level: loud\n", errors.CategoryValidation},
		{"bad format", "logging:\n  format: xml\n", errors.CategoryValidation},
		{"bad timeout", "http:\n  read_header_timeout: soon\n", errors.CategoryValidation},
		{"relative metrics path", "metrics:\n  enabled: true\n  path: metrics\n", errors.CategoryValidation},
		{"negative probe", "health:\n  probe_interval: -1s\n", errors.CategoryValidation},
		{"watch without fixture", "store:\n  watch_fixture: true\n", errors.CategoryValidation},
		{"bad backoff", "publish:\n  retry:\n    backoff: random\n", errors.CategoryValidation},
		{"negative retries", "publish:\n  retry:\n    max_retries: -1\n", errors.CategoryValidation},
		{"wildcard subject", "publish:\n  enabled: true\n  subject: decisions.>\n", errors.CategoryValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			if got := errors.GetCategory(err); got != tc.category {
				t.Errorf("expected category %s, got %s (%v)", tc.category, got, err)
			}
		})
	}
}

func TestDurations(t *testing.T) {
	cfg := Default()
	require.Equal(t, "5s", cfg.HTTP.ReadHeaderTimeoutDuration().String())
	require.Equal(t, "10s", cfg.HTTP.ShutdownTimeoutDuration().String())
	require.Equal(t, "30s", cfg.Health.ProbeIntervalDuration().String())

	cfg.Health.ProbeInterval = "0s"
	require.NoError(t, Validate(cfg))
	require.Zero(t, cfg.Health.ProbeIntervalDuration())
}

func TestExplicitZeroRetriesIsKept(t *testing.T) {
	cfg, err := Parse([]byte("publish:\n  retry:\n    backoff: Exponential\n    max_retries: 0\n"))
	require.NoError(t, err)
	require.Equal(t, RetryBackoffExponential, cfg.Publish.Retry.Backoff)
	require.Equal(t, 0, *cfg.Publish.Retry.MaxRetries)
}
