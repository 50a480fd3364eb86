package render

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/rendergate/internal/recipestore"
)

func seededResolver(t *testing.T, opts ...Option) *Resolver {
	t.Helper()
	store, err := recipestore.NewSQLiteStore(recipestore.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	f, err := recipestore.LoadFixture("../recipestore/testdata/recipes.yaml")
	require.NoError(t, err)
	require.NoError(t, store.Seed(t.Context(), f))
	return NewResolver(store, opts...)
}

func TestResolverAgainstSQLiteStore(t *testing.T) {
	r := seededResolver(t)
	ctx := t.Context()

	tests := []struct {
		stage, key string
		want       Decision
	}{
		{"thesis", "business_case", Decision{ShouldRender: true, Reason: ReasonIsMarkdown}},
		{"thesis", "summary", Decision{ShouldRender: true, Reason: ReasonIsMarkdown}},
		{"thesis", "HeaderContext", Decision{Reason: ReasonIsJSON}},
		{"antithesis", "feature_spec", Decision{ShouldRender: true, Reason: ReasonIsMarkdown}},
		{"antithesis", "business_case", Decision{Reason: ReasonIsJSON}},
		{"antithesis", "risk_register", Decision{Reason: ReasonIsJSON}},
		{"synthesis", "business_case", Decision{Reason: ReasonNoActiveRecipe}},
		{"unknown", "business_case", Decision{Reason: ReasonStageNotFound, Details: "stage not found"}},
	}
	for _, tc := range tests {
		t.Run(tc.stage+"/"+tc.key, func(t *testing.T) {
			require.Equal(t, tc.want, r.Decide(ctx, tc.stage, tc.key))
		})
	}
}

type countingRecorder struct {
	mu            sync.Mutex
	reasons       map[string]int
	parseFailures int
	observed      int
}

func (c *countingRecorder) IncDecision(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reasons == nil {
		c.reasons = map[string]int{}
	}
	c.reasons[reason]++
}

func (c *countingRecorder) ObserveDecisionDuration(time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observed++
}

func (c *countingRecorder) AddStepParseFailures(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parseFailures += n
}

func (c *countingRecorder) IncPublish(bool)       {}
func (c *countingRecorder) SetStoreUp(bool)       {}
func (c *countingRecorder) IncFixtureReload(bool) {}

func TestResolverRecordsMetrics(t *testing.T) {
	rec := &countingRecorder{}
	r := seededResolver(t, WithRecorder(rec))

	r.Decide(t.Context(), "thesis", "business_case")
	r.Decide(t.Context(), "thesis", "HeaderContext")
	r.Decide(t.Context(), "synthesis", "business_case")

	require.Equal(t, map[string]int{"is_markdown": 1, "is_json": 1, "no_active_recipe": 1}, rec.reasons)
	require.Equal(t, 3, rec.observed)
	require.Zero(t, rec.parseFailures)
}
