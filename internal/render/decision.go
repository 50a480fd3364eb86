package render

import "fmt"

// Reason is the machine-readable code attached to every Decision.
type Reason string

const (
	ReasonIsMarkdown       Reason = "is_markdown"
	ReasonIsJSON           Reason = "is_json"
	ReasonStageNotFound    Reason = "stage_not_found"
	ReasonInstanceNotFound Reason = "instance_not_found"
	ReasonStepsNotFound    Reason = "steps_not_found"
	ReasonParseError       Reason = "parse_error"
	ReasonQueryError       Reason = "query_error"
	ReasonNoActiveRecipe   Reason = "no_active_recipe"
)

// Decision is the resolver's verdict. ShouldRender is true only with ReasonIsMarkdown.
type Decision struct {
	ShouldRender bool   `json:"shouldRender"`
	Reason       Reason `json:"reason"`
	Details      string `json:"details,omitempty"`
}

// Classified reports whether the decision is one of the two normal outcomes
// (is_markdown or is_json) rather than an early exit.
func (d Decision) Classified() bool {
	return d.Reason == ReasonIsMarkdown || d.Reason == ReasonIsJSON
}

func (d Decision) String() string {
	if d.Details != "" {
		return fmt.Sprintf("render=%t reason=%s details=%q", d.ShouldRender, d.Reason, d.Details)
	}
	return fmt.Sprintf("render=%t reason=%s", d.ShouldRender, d.Reason)
}

func markdown() Decision { return Decision{ShouldRender: true, Reason: ReasonIsMarkdown} }

func structuredData() Decision { return Decision{Reason: ReasonIsJSON} }

func failure(reason Reason, details string) Decision {
	return Decision{Reason: reason, Details: details}
}
