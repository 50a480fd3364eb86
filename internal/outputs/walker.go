package outputs

import "git.home.luguber.info/inful/rendergate/internal/recipe"

// StepFailure records a step whose declaration could not be decoded.
type StepFailure struct {
	StepID  string
	StepKey string
	Message string
}

// WalkResult is the Markdown key set for one step collection plus any
// per-step decode failures encountered while building it.
type WalkResult struct {
	Keys     *KeySet
	Failures []StepFailure
}

// ParseError reports the last decode failure when no key could be extracted
// from any step. If at least one key was found the failures are tolerated.
func (r WalkResult) ParseError() (string, bool) {
	if r.Keys.Len() > 0 || len(r.Failures) == 0 {
		return "", false
	}
	return r.Failures[len(r.Failures)-1].Message, true
}

// Walk decodes every step's declaration and accumulates the Markdown keys they
// declare. A step that fails to decode is recorded and skipped.
func Walk(steps []recipe.Step) WalkResult {
	result := WalkResult{Keys: NewKeySet()}
	for i := range steps {
		step := &steps[i]
		d := Decode(step.OutputsRequired)
		if !d.OK {
			result.Failures = append(result.Failures, StepFailure{
				StepID:  step.ID,
				StepKey: step.StepKey,
				Message: d.Err,
			})
			continue
		}
		for _, rule := range Rules(d.Value) {
			ExtractRule(rule, result.Keys)
		}
	}
	return result
}
