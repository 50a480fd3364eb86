package recipe

import "context"

// StageReader fetches one stage by slug. Returns ErrStageNotFound when absent.
type StageReader interface {
	StageBySlug(ctx context.Context, slug string) (*Stage, error)
}

// InstanceReader fetches one configuration instance by id. Returns ErrInstanceNotFound when absent.
type InstanceReader interface {
	InstanceByID(ctx context.Context, id string) (*Instance, error)
}

// TemplateStepReader lists steps shared by every non-cloned instance of a template.
type TemplateStepReader interface {
	TemplateSteps(ctx context.Context, templateID string) ([]Step, error)
}

// ClonedStepReader lists steps owned by a single cloned instance.
type ClonedStepReader interface {
	ClonedSteps(ctx context.Context, instanceID string) ([]Step, error)
}

// Reader is the full read contract the render resolver needs from the store.
type Reader interface {
	StageReader
	InstanceReader
	TemplateStepReader
	ClonedStepReader
}
