package recipe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStageHasActiveRecipe(t *testing.T) {
	id := "instance-1"
	empty := ""

	require.True(t, (&Stage{ActiveInstanceID: &id}).HasActiveRecipe())
	require.False(t, (&Stage{}).HasActiveRecipe())
	require.False(t, (&Stage{ActiveInstanceID: &empty}).HasActiveRecipe())

	var nilStage *Stage
	require.False(t, nilStage.HasActiveRecipe())
}

func TestOutputsRequiredVariants(t *testing.T) {
	var zero OutputsRequired
	require.True(t, zero.IsAbsent())
	require.True(t, Structured(nil).IsAbsent())

	s := Structured(map[string]any{"document_key": "business_case"})
	require.False(t, s.IsAbsent())
	v, ok := s.Value()
	require.True(t, ok)
	require.Equal(t, "business_case", v.(map[string]any)["document_key"])
	_, ok = s.Text()
	require.False(t, ok)

	e := Encoded(`{"documents":[]}`)
	text, ok := e.Text()
	require.True(t, ok)
	require.Equal(t, `{"documents":[]}`, text)
	_, ok = e.Value()
	require.False(t, ok)
}
