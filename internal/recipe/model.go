package recipe

import "time"

// Stage is a named phase of the pipeline.
type Stage struct {
	ID               string
	Slug             string
	DisplayName      string
	RecipeTemplateID string
	// ActiveInstanceID is nil when the stage has no active recipe.
	ActiveInstanceID *string
}

// HasActiveRecipe reports whether the stage points at a configuration instance.
func (s *Stage) HasActiveRecipe() bool {
	return s != nil && s.ActiveInstanceID != nil && *s.ActiveInstanceID != ""
}

// Instance is a configuration instance bound to a stage.
type Instance struct {
	ID         string
	StageID    string
	TemplateID string
	IsCloned   bool
	ClonedAt   *time.Time
}

// Step is one unit of work within a recipe. Template and cloned rows share this shape.
type Step struct {
	ID              string
	StepKey         string
	StepName        string
	JobType         string
	OutputType      string
	OutputsRequired OutputsRequired
}
