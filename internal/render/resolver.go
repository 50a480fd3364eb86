package render

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/rendergate/internal/foundation/errors"
	"git.home.luguber.info/inful/rendergate/internal/logfields"
	"git.home.luguber.info/inful/rendergate/internal/metrics"
	"git.home.luguber.info/inful/rendergate/internal/outputs"
	"git.home.luguber.info/inful/rendergate/internal/recipe"
)

// Resolver answers render decisions against a recipe store. It holds no
// per-call state and is safe for concurrent use.
type Resolver struct {
	store    recipe.Reader
	logger   *slog.Logger
	recorder metrics.Recorder
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for decision and decode diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Resolver) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// NewResolver creates a Resolver reading from store.
func NewResolver(store recipe.Reader, opts ...Option) *Resolver {
	r := &Resolver{store: store, logger: slog.Default(), recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// resolution is the state gathered before classification.
type resolution struct {
	instance *recipe.Instance
	source   StepSource
	walk     outputs.WalkResult
}

// Decide reports whether the artifact outputKey produced by stageSlug must be rendered.
func (r *Resolver) Decide(ctx context.Context, stageSlug, outputKey string) Decision {
	start := time.Now()
	d := r.decide(ctx, stageSlug, outputKey)
	elapsed := time.Since(start)

	r.recorder.IncDecision(string(d.Reason))
	r.recorder.ObserveDecisionDuration(elapsed)

	attrs := []any{
		logfields.Stage(stageSlug),
		logfields.OutputKey(outputKey),
		logfields.Reason(string(d.Reason)),
		logfields.DurationMS(float64(elapsed.Microseconds()) / 1000),
	}
	if d.Details != "" {
		attrs = append(attrs, slog.String("details", d.Details))
	}
	r.logger.DebugContext(ctx, "Render decision", attrs...)
	return d
}

func (r *Resolver) decide(ctx context.Context, stageSlug, outputKey string) Decision {
	res, fail := r.resolve(ctx, stageSlug)
	if fail != nil {
		return *fail
	}
	return classify(res.walk, outputKey)
}

// classify is the terminal branch: parse failure, Markdown, or the JSON default.
func classify(walk outputs.WalkResult, outputKey string) Decision {
	if msg, failed := walk.ParseError(); failed {
		return failure(ReasonParseError, msg)
	}
	if walk.Keys.Has(outputKey) {
		return markdown()
	}
	return structuredData()
}

// Listing is the Markdown key set declared by a stage's active recipe.
type Listing struct {
	Stage      string                `json:"stage"`
	InstanceID string                `json:"instance_id"`
	Source     string                `json:"step_source"`
	Keys       []string              `json:"keys"`
	Failures   []outputs.StepFailure `json:"-"`
}

// MarkdownKeys lists every artifact key the stage's active recipe declares as
// Markdown. Early exits and a total parse failure are returned as *Failure.
func (r *Resolver) MarkdownKeys(ctx context.Context, stageSlug string) (Listing, error) {
	res, fail := r.resolve(ctx, stageSlug)
	if fail != nil {
		return Listing{}, &Failure{Stage: stageSlug, Decision: *fail}
	}
	if msg, failed := res.walk.ParseError(); failed {
		return Listing{}, &Failure{Stage: stageSlug, Decision: failure(ReasonParseError, msg)}
	}
	keys := res.walk.Keys.Keys()
	r.logger.DebugContext(ctx, "Listed markdown keys",
		logfields.Stage(stageSlug),
		logfields.InstanceID(res.instance.ID),
		logfields.StepSource(res.source.Name()),
		logfields.KeyCount(len(keys)))
	return Listing{
		Stage:      stageSlug,
		InstanceID: res.instance.ID,
		Source:     res.source.Name(),
		Keys:       keys,
		Failures:   res.walk.Failures,
	}, nil
}

// resolve runs the stage, instance and step lookups and the schema walk.
// A non-nil Decision is an early exit.
func (r *Resolver) resolve(ctx context.Context, stageSlug string) (resolution, *Decision) {
	var res resolution
	if stageSlug == "" {
		d := failure(ReasonStageNotFound, "stage slug is required")
		return res, &d
	}

	stage, err := r.store.StageBySlug(ctx, stageSlug)
	if err != nil || stage == nil {
		d := readFailure(err, ReasonStageNotFound, recipe.ErrStageNotFound)
		return res, &d
	}
	if !stage.HasActiveRecipe() {
		d := failure(ReasonNoActiveRecipe, "")
		return res, &d
	}

	inst, err := r.store.InstanceByID(ctx, *stage.ActiveInstanceID)
	if err != nil || inst == nil {
		d := readFailure(err, ReasonInstanceNotFound, recipe.ErrInstanceNotFound)
		return res, &d
	}
	res.instance = inst

	res.source = SelectSource(inst, r.store, r.store)
	steps, err := res.source.Load(ctx)
	if err != nil {
		d := readFailure(err, ReasonStepsNotFound, nil)
		return res, &d
	}
	if len(steps) == 0 {
		d := failure(ReasonStepsNotFound,
			fmt.Sprintf("no %s steps found for %s", res.source.Name(), res.source.OwnerID()))
		return res, &d
	}

	res.walk = outputs.Walk(steps)
	r.reportDecodeFailures(ctx, stageSlug, res)
	return res, nil
}

func (r *Resolver) reportDecodeFailures(ctx context.Context, stageSlug string, res resolution) {
	if len(res.walk.Failures) == 0 {
		return
	}
	r.recorder.AddStepParseFailures(len(res.walk.Failures))
	for _, f := range res.walk.Failures {
		r.logger.WarnContext(ctx, "Failed to decode step outputs declaration",
			logfields.Stage(stageSlug),
			logfields.InstanceID(res.instance.ID),
			logfields.StepSource(res.source.Name()),
			logfields.StepID(f.StepID),
			slog.String("step_key", f.StepKey),
			slog.String(logfields.KeyError, f.Message))
	}
}

// readFailure converts a failed or empty read into a decision. A read whose
// error chain ends in context cancellation or deadline is a query_error; anything
// else is the lookup's own reason, whatever state the context is in by now.
func readFailure(err error, reason Reason, absent *errors.ClassifiedError) Decision {
	if err == nil {
		if absent != nil {
			return failure(reason, absent.Message())
		}
		return failure(reason, "")
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return failure(ReasonQueryError, errors.Detail(err))
	}
	return failure(reason, errors.Detail(err))
}
