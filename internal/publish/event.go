package publish

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/rendergate/internal/render"
)

// DecisionEvent is the message published for every announced decision.
type DecisionEvent struct {
	ID        string          `json:"id"`
	StageSlug string          `json:"stage_slug"`
	OutputKey string          `json:"output_key"`
	Decision  render.Decision `json:"decision"`
	DecidedAt time.Time       `json:"decided_at"`
}

// NewDecisionEvent stamps a decision with a fresh ID.
func NewDecisionEvent(stageSlug, outputKey string, d render.Decision, at time.Time) DecisionEvent {
	return DecisionEvent{
		ID:        uuid.NewString(),
		StageSlug: stageSlug,
		OutputKey: outputKey,
		Decision:  d,
		DecidedAt: at.UTC(),
	}
}

// Encode renders the event as JSON.
func (e DecisionEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}
