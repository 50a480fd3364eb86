package render

import (
	"context"
	"sync"
	"testing"

	"git.home.luguber.info/inful/rendergate/internal/recipe"
)

// fakeStore is an in-memory recipe.Reader that counts reads and can inject failures.
type fakeStore struct {
	mu sync.Mutex

	stages    map[string]*recipe.Stage
	instances map[string]*recipe.Instance
	templates map[string][]recipe.Step
	clones    map[string][]recipe.Step

	stageErr, instanceErr, templateErr, cloneErr error

	// forbidden reads fail the test when touched
	forbidTemplate, forbidCloned bool
	t                            *testing.T

	calls map[string]int
}

func newFakeStore(t *testing.T) *fakeStore {
	return &fakeStore{
		stages:    map[string]*recipe.Stage{},
		instances: map[string]*recipe.Instance{},
		templates: map[string][]recipe.Step{},
		clones:    map[string][]recipe.Step{},
		calls:     map[string]int{},
		t:         t,
	}
}

func (f *fakeStore) count(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
}

func (f *fakeStore) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeStore) StageBySlug(_ context.Context, slug string) (*recipe.Stage, error) {
	f.count("stage")
	if f.stageErr != nil {
		return nil, f.stageErr
	}
	st, ok := f.stages[slug]
	if !ok {
		return nil, recipe.ErrStageNotFound
	}
	return st, nil
}

func (f *fakeStore) InstanceByID(_ context.Context, id string) (*recipe.Instance, error) {
	f.count("instance")
	if f.instanceErr != nil {
		return nil, f.instanceErr
	}
	inst, ok := f.instances[id]
	if !ok {
		return nil, recipe.ErrInstanceNotFound
	}
	return inst, nil
}

func (f *fakeStore) TemplateSteps(_ context.Context, templateID string) ([]recipe.Step, error) {
	f.count("template_steps")
	if f.forbidTemplate {
		f.t.Errorf("template steps read for template %q", templateID)
	}
	if f.templateErr != nil {
		return nil, f.templateErr
	}
	return f.templates[templateID], nil
}

func (f *fakeStore) ClonedSteps(_ context.Context, instanceID string) ([]recipe.Step, error) {
	f.count("cloned_steps")
	if f.forbidCloned {
		f.t.Errorf("cloned steps read for instance %q", instanceID)
	}
	if f.cloneErr != nil {
		return nil, f.cloneErr
	}
	return f.clones[instanceID], nil
}

func (f *fakeStore) addStage(slug, instanceID string) {
	st := &recipe.Stage{ID: "stage-" + slug, Slug: slug, RecipeTemplateID: "template-1"}
	if instanceID != "" {
		id := instanceID
		st.ActiveInstanceID = &id
	}
	f.stages[slug] = st
}

func (f *fakeStore) addInstance(id, templateID string, cloned bool) {
	f.instances[id] = &recipe.Instance{ID: id, StageID: "stage", TemplateID: templateID, IsCloned: cloned}
}

func step(id string, outputs recipe.OutputsRequired) recipe.Step {
	return recipe.Step{ID: id, StepKey: id, OutputsRequired: outputs}
}
