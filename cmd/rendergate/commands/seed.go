package commands

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/rendergate/internal/foundation/errors"
	"git.home.luguber.info/inful/rendergate/internal/recipestore"
)

// SeedCmd implements the 'seed' command.
type SeedCmd struct {
	Path string `arg:"" type:"existingfile" help:"Fixture YAML to load"`
}

func (s *SeedCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Store.Path == recipestore.MemoryPath {
		return errors.ValidationError("seeding an in-memory store has no lasting effect; set store.path").
			UserAction().Build()
	}
	// the fixture is the argument, not a pre-seed
	cfg.Store.Fixture = ""

	fixture, err := recipestore.LoadFixture(s.Path)
	if err != nil {
		return err
	}
	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Seed(ctx, fixture); err != nil {
		return err
	}
	slog.Info("Recipe store seeded", "store", cfg.Store.Path, "fixture", s.Path)
	_, err = fmt.Fprintf(g.Out, "seeded %d stages, %d instances, %d template steps, %d cloned steps\n",
		len(fixture.Stages), len(fixture.Instances), len(fixture.TemplateSteps), len(fixture.ClonedSteps))
	return err
}
