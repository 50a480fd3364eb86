package commands

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/rendergate/internal/config"
	"git.home.luguber.info/inful/rendergate/internal/foundation/errors"
	"git.home.luguber.info/inful/rendergate/internal/logfields"
	"git.home.luguber.info/inful/rendergate/internal/observability"
	"git.home.luguber.info/inful/rendergate/internal/recipestore"
)

// Global carries state shared by every subcommand.
type Global struct {
	Out io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (built-in defaults when omitted)" type:"path"`
	Fixture string           `short:"f" help:"YAML fixture seeded into the store before the command runs" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Decide DecideCmd `cmd:"" help:"Decide whether a stage artifact must be rendered to Markdown"`
	Keys   KeysCmd   `cmd:"" help:"List the Markdown artifact keys of a stage's active recipe"`
	Seed   SeedCmd   `cmd:"" help:"Load a YAML fixture into the configured recipe store"`
	Serve  ServeCmd  `cmd:"" help:"Serve the decision API over HTTP"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// LoadConfig loads --config (or the defaults) and reconfigures logging from it.
// --verbose always wins over the configured level.
func (c *CLI) LoadConfig() (*config.Config, error) {
	cfg := config.Default()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if c.Fixture != "" {
		cfg.Store.Fixture = c.Fixture
	}
	slog.SetDefault(newLogger(os.Stderr, cfg.Logging, c.Verbose))
	return cfg, nil
}

func newLogger(w io.Writer, lc config.LoggingConfig, verbose bool) *slog.Logger {
	level := lc.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if lc.Format == config.LogFormatJSON {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(observability.NewContextHandler(h))
}

// openStore opens the configured store and seeds the configured fixture, if any.
func openStore(ctx context.Context, cfg *config.Config) (*recipestore.SQLiteStore, error) {
	store, err := recipestore.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if cfg.Store.Fixture == "" {
		return store, nil
	}
	fixture, err := recipestore.LoadFixture(cfg.Store.Fixture)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	if err := store.Seed(ctx, fixture); err != nil {
		_ = store.Close()
		return nil, err
	}
	slog.Debug("Seeded recipe store from fixture",
		"path", cfg.Store.Fixture,
		logfields.StepCount(len(fixture.TemplateSteps)+len(fixture.ClonedSteps)))
	return store, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to write output").Build()
	}
	return nil
}
