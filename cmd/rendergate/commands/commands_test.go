package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/rendergate/internal/foundation/errors"
	"git.home.luguber.info/inful/rendergate/internal/render"
)

const fixturePath = "../../../internal/recipestore/testdata/recipes.yaml"

func TestDecideWithFixture(t *testing.T) {
	var out bytes.Buffer
	root := &CLI{Fixture: fixturePath}
	cmd := &DecideCmd{Stage: "antithesis", Key: "feature_spec"}

	require.NoError(t, cmd.Run(&Global{Out: &out}, root))

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Equal(t, true, got["shouldRender"])
	require.Equal(t, "is_markdown", got["reason"])
	require.NotContains(t, got, "decision_id")
}

func TestDecideUnknownStageStillSucceeds(t *testing.T) {
	var out bytes.Buffer
	cmd := &DecideCmd{Stage: "nope", Key: "business_case"}
	require.NoError(t, cmd.Run(&Global{Out: &out}, &CLI{}))
	require.Contains(t, out.String(), `"reason": "stage_not_found"`)
}

func TestKeys(t *testing.T) {
	var out bytes.Buffer
	cmd := &KeysCmd{Stage: "thesis"}
	require.NoError(t, cmd.Run(&Global{Out: &out}, &CLI{Fixture: fixturePath}))

	var listing render.Listing
	require.NoError(t, json.Unmarshal(out.Bytes(), &listing))
	require.Equal(t, []string{"business_case", "summary"}, listing.Keys)
	require.Equal(t, render.SourceTemplate, listing.Source)
}

func TestKeysNoActiveRecipe(t *testing.T) {
	cmd := &KeysCmd{Stage: "synthesis"}
	err := cmd.Run(&Global{Out: &bytes.Buffer{}}, &CLI{Fixture: fixturePath})
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryNotFound))
	require.Equal(t, 3, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestSeedThenDecide(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "rendergate.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("store:\n  path: "+filepath.Join(dir, "recipes.db")+"\n"), 0o600))

	var out bytes.Buffer
	seed := &SeedCmd{Path: fixturePath}
	require.NoError(t, seed.Run(&Global{Out: &out}, &CLI{Config: cfgPath}))
	require.Contains(t, out.String(), "seeded 3 stages")

	out.Reset()
	decide := &DecideCmd{Stage: "thesis", Key: "summary"}
	require.NoError(t, decide.Run(&Global{Out: &out}, &CLI{Config: cfgPath}))
	require.Contains(t, out.String(), `"reason": "is_markdown"`)
}

func TestSeedRejectsMemoryStore(t *testing.T) {
	seed := &SeedCmd{Path: fixturePath}
	err := seed.Run(&Global{Out: &bytes.Buffer{}}, &CLI{})
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestDecidePublishValidatesPublishSettings(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "rendergate.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("publish:\n  subject: rendergate.*\n"), 0o600))

	cmd := &DecideCmd{Stage: "thesis", Key: "summary", Publish: true}
	err := cmd.Run(&Global{Out: &bytes.Buffer{}}, &CLI{Config: cfgPath, Fixture: fixturePath})
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
	require.Equal(t, 2, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestParseFlags(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)

	kctx, err := parser.Parse([]string{"-v", "decide", "--stage", "thesis", "--key", "business_case", "--publish"})
	require.NoError(t, err)
	require.Equal(t, "decide", kctx.Command())
	require.True(t, cli.Verbose)
	require.Equal(t, "thesis", cli.Decide.Stage)
	require.True(t, cli.Decide.Publish)

	_, err = parser.Parse([]string{"decide", "--stage", "thesis"})
	require.Error(t, err)
}
