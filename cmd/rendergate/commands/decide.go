package commands

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/rendergate/internal/config"
	"git.home.luguber.info/inful/rendergate/internal/logfields"
	"git.home.luguber.info/inful/rendergate/internal/publish"
	"git.home.luguber.info/inful/rendergate/internal/render"
	"git.home.luguber.info/inful/rendergate/internal/retry"
)

// DecideCmd implements the 'decide' command.
type DecideCmd struct {
	Stage   string `short:"s" required:"" help:"Stage slug"`
	Key     string `short:"k" required:"" help:"Candidate output artifact key"`
	Publish bool   `help:"Publish the decision over NATS using the publish configuration"`
}

// decideOutput is printed to stdout.
type decideOutput struct {
	render.Decision
	DecisionID string `json:"decision_id,omitempty"`
}

func (d *DecideCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	decision := render.NewResolver(store).Decide(ctx, d.Stage, d.Key)
	out := decideOutput{Decision: decision}

	if d.Publish {
		cfg.Publish.Enabled = true
		if err := config.Validate(cfg); err != nil {
			return err
		}
		pub, err := publish.New(ctx, cfg.Publish)
		if err != nil {
			return err
		}
		reporter := publish.NewReporter(pub, nil, publish.WithRetryPolicy(retry.FromConfig(cfg.Publish.Retry)))
		defer func() { _ = reporter.Close() }()

		ev, err := reporter.Report(ctx, d.Stage, d.Key, decision)
		if err != nil {
			return err
		}
		out.DecisionID = ev.ID
		slog.Info("Decision published", logfields.DecisionID(ev.ID), "subject", cfg.Publish.Subject)
	}

	return writeJSON(g.Out, out)
}
