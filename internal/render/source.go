package render

import (
	"context"

	"git.home.luguber.info/inful/rendergate/internal/recipe"
)

// Step source names, as logged and reported in key listings.
const (
	SourceCloned   = "cloned"
	SourceTemplate = "template"
)

// StepSource loads the step collection that applies to one configuration instance.
type StepSource interface {
	Name() string
	OwnerID() string
	Load(ctx context.Context) ([]recipe.Step, error)
}

type clonedSource struct {
	reader     recipe.ClonedStepReader
	instanceID string
}

func (s clonedSource) Name() string    { return SourceCloned }
func (s clonedSource) OwnerID() string { return s.instanceID }
func (s clonedSource) Load(ctx context.Context) ([]recipe.Step, error) {
	return s.reader.ClonedSteps(ctx, s.instanceID)
}

type templateSource struct {
	reader     recipe.TemplateStepReader
	templateID string
}

func (s templateSource) Name() string    { return SourceTemplate }
func (s templateSource) OwnerID() string { return s.templateID }
func (s templateSource) Load(ctx context.Context) ([]recipe.Step, error) {
	return s.reader.TemplateSteps(ctx, s.templateID)
}

// SelectSource picks where an instance's steps live. Cloned instances own their
// steps; every other instance shares its template's steps. The choice is made
// once per resolution.
func SelectSource(inst *recipe.Instance, templates recipe.TemplateStepReader, clones recipe.ClonedStepReader) StepSource {
	if inst.IsCloned {
		return clonedSource{reader: clones, instanceID: inst.ID}
	}
	return templateSource{reader: templates, templateID: inst.TemplateID}
}
