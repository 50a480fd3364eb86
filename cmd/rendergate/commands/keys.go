package commands

import (
	"context"
	stderrors "errors"
	"log/slog"

	"git.home.luguber.info/inful/rendergate/internal/logfields"
	"git.home.luguber.info/inful/rendergate/internal/render"
)

// KeysCmd implements the 'keys' command.
type KeysCmd struct {
	Stage string `short:"s" required:"" help:"Stage slug"`
}

func (k *KeysCmd) Run(g *Global, root *CLI) error {
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

	listing, err := render.NewResolver(store).MarkdownKeys(ctx, k.Stage)
	if err != nil {
		var f *render.Failure
		if stderrors.As(err, &f) {
			return f.Classified()
		}
		return err
	}
	for _, failure := range listing.Failures {
		slog.Warn("Step outputs could not be decoded",
			logfields.Stage(k.Stage), logfields.StepID(failure.StepID), "message", failure.Message)
	}
	return writeJSON(g.Out, listing)
}
