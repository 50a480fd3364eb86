package metrics

import "time"

// Recorder defines observability hooks for the render resolver and its callers.
type Recorder interface {
	IncDecision(reason string)
	ObserveDecisionDuration(d time.Duration)
	AddStepParseFailures(n int)
	IncPublish(success bool)
	SetStoreUp(up bool)
	IncFixtureReload(success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncDecision(string)                    {}
func (NoopRecorder) ObserveDecisionDuration(time.Duration) {}
func (NoopRecorder) AddStepParseFailures(int)              {}
func (NoopRecorder) IncPublish(bool)                       {}
func (NoopRecorder) SetStoreUp(bool)                       {}
func (NoopRecorder) IncFixtureReload(bool)                 {}
