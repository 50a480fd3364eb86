package recipestore

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/rendergate/internal/foundation/errors"
	"git.home.luguber.info/inful/rendergate/internal/recipe"
)

// Fixture is a YAML document describing stages, instances and steps to load into a store.
type Fixture struct {
	Stages        []FixtureStage        `yaml:"stages"`
	Instances     []FixtureInstance     `yaml:"instances"`
	TemplateSteps []FixtureTemplateStep `yaml:"template_steps"`
	ClonedSteps   []FixtureClonedStep   `yaml:"cloned_steps"`
}

type FixtureStage struct {
	ID               string `yaml:"id"`
	Slug             string `yaml:"slug"`
	DisplayName      string `yaml:"display_name"`
	RecipeTemplateID string `yaml:"recipe_template_id"`
	ActiveInstanceID string `yaml:"active_instance_id"`
}

type FixtureInstance struct {
	ID         string     `yaml:"id"`
	StageID    string     `yaml:"stage_id"`
	TemplateID string     `yaml:"template_id"`
	IsCloned   bool       `yaml:"is_cloned"`
	ClonedAt   *time.Time `yaml:"cloned_at"`
}

// FixtureStep holds the columns template and cloned steps share. OutputsRequired
// may be a YAML mapping or list (stored structured) or a string (stored as encoded text).
type FixtureStep struct {
	ID              string `yaml:"id"`
	StepKey         string `yaml:"step_key"`
	StepName        string `yaml:"step_name"`
	JobType         string `yaml:"job_type"`
	OutputType      string `yaml:"output_type"`
	OutputsRequired any    `yaml:"outputs_required"`
}

type FixtureTemplateStep struct {
	FixtureStep `yaml:",inline"`
	TemplateID  string `yaml:"template_id"`
	StepNumber  int    `yaml:"step_number"`
}

type FixtureClonedStep struct {
	FixtureStep    `yaml:",inline"`
	InstanceID     string `yaml:"instance_id"`
	TemplateStepID string `yaml:"template_step_id"`
	ExecutionOrder int    `yaml:"execution_order"`
	Skipped        bool   `yaml:"is_skipped"`
}

// Outputs converts the YAML value into the store's boundary variant.
func (s FixtureStep) Outputs() recipe.OutputsRequired {
	if text, ok := s.OutputsRequired.(string); ok {
		return recipe.Encoded(text)
	}
	return recipe.Structured(s.OutputsRequired)
}

// LoadFixture reads and parses a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "read recipe fixture").
			WithContext("path", path).Build()
	}
	f, err := ParseFixture(data)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "parse recipe fixture").
			WithContext("path", path).Build()
	}
	return f, nil
}

// ParseFixture decodes fixture YAML, rejecting unknown keys, then validates
// references and fills missing ids. Empty input is an empty fixture.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.WrapError(err, errors.CategoryValidation, "decode recipe fixture").Build()
	}
	f.fillIDs()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Fixture) fillIDs() {
	for i := range f.Stages {
		if f.Stages[i].ID == "" {
			f.Stages[i].ID = uuid.NewString()
		}
	}
	for i := range f.Instances {
		if f.Instances[i].ID == "" {
			f.Instances[i].ID = uuid.NewString()
		}
	}
	for i := range f.TemplateSteps {
		if f.TemplateSteps[i].ID == "" {
			f.TemplateSteps[i].ID = uuid.NewString()
		}
	}
	for i := range f.ClonedSteps {
		if f.ClonedSteps[i].ID == "" {
			f.ClonedSteps[i].ID = uuid.NewString()
		}
	}
}

// Validate checks required fields and that instances reference known stages.
func (f *Fixture) Validate() error {
	stageIDs := make(map[string]struct{}, len(f.Stages))
	for _, st := range f.Stages {
		if st.Slug == "" {
			return errors.ValidationError("stage slug is required").WithContext("stage_id", st.ID).Build()
		}
		stageIDs[st.ID] = struct{}{}
	}
	for _, inst := range f.Instances {
		if inst.TemplateID == "" {
			return errors.ValidationError("instance template_id is required").WithContext("instance_id", inst.ID).Build()
		}
		if _, ok := stageIDs[inst.StageID]; !ok {
			return errors.ValidationError("instance references unknown stage").
				WithContext("instance_id", inst.ID).
				WithContext("stage_id", inst.StageID).
				Build()
		}
	}
	for _, st := range f.TemplateSteps {
		if st.TemplateID == "" || st.StepKey == "" {
			return errors.ValidationError("template step needs template_id and step_key").WithContext("step_id", st.ID).Build()
		}
	}
	for _, st := range f.ClonedSteps {
		if st.InstanceID == "" || st.StepKey == "" {
			return errors.ValidationError("cloned step needs instance_id and step_key").WithContext("step_id", st.ID).Build()
		}
	}
	return nil
}
