package handlers

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"

	"git.home.luguber.info/inful/rendergate/internal/foundation/errors"
	"git.home.luguber.info/inful/rendergate/internal/observability"
	"git.home.luguber.info/inful/rendergate/internal/publish"
	"git.home.luguber.info/inful/rendergate/internal/render"
	"git.home.luguber.info/inful/rendergate/internal/server/responses"
)

// DecisionIDHeader carries the ID of the published decision event.
const DecisionIDHeader = "X-Decision-ID"

// Resolver is the subset of render.Resolver the handlers need.
type Resolver interface {
	Decide(ctx context.Context, stageSlug, outputKey string) render.Decision
	MarkdownKeys(ctx context.Context, stageSlug string) (render.Listing, error)
}

// Announcer publishes decisions. A nil Announcer disables publishing.
type Announcer interface {
	Report(ctx context.Context, stageSlug, outputKey string, d render.Decision) (publish.DecisionEvent, error)
}

// DecisionHandlers serves render decisions and Markdown key listings.
type DecisionHandlers struct {
	resolver     Resolver
	announcer    Announcer
	errorAdapter *errors.HTTPErrorAdapter
}

// NewDecisionHandlers creates the decision handlers.
func NewDecisionHandlers(resolver Resolver, announcer Announcer) *DecisionHandlers {
	return &DecisionHandlers{
		resolver:     resolver,
		announcer:    announcer,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleDecision answers GET /v1/stages/{slug}/decision?output_key=KEY.
// Every decision, including early exits, is a 200 response.
func (h *DecisionHandlers) HandleDecision(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	key := r.URL.Query().Get("output_key")
	if key == "" {
		h.errorAdapter.WriteErrorResponse(w, r, errors.ValidationError("output_key query parameter is required").
			WithContext("stage", slug).Build())
		return
	}

	ctx := observability.WithStage(r.Context(), slug)
	d := h.resolver.Decide(ctx, slug, key)
	if h.announcer != nil {
		// delivery failures are logged by the announcer; the decision still stands
		ev, _ := h.announcer.Report(ctx, slug, key, d)
		w.Header().Set(DecisionIDHeader, ev.ID)
	}

	if err := respond(w, r, http.StatusOK, d); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write decision response").Build())
	}
}

// HandleMarkdownKeys answers GET /v1/stages/{slug}/markdown-keys.
func (h *DecisionHandlers) HandleMarkdownKeys(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	listing, err := h.resolver.MarkdownKeys(observability.WithStage(r.Context(), slug), slug)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, classifyFailure(err))
		return
	}

	resp := responses.MarkdownKeysResponse{
		Stage:         listing.Stage,
		InstanceID:    listing.InstanceID,
		StepSource:    listing.Source,
		Keys:          listing.Keys,
		ParseFailures: len(listing.Failures),
	}
	if err := respond(w, r, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write markdown keys response").Build())
	}
}

// classifyFailure lets the HTTP adapter pick the status code from the
// failure's category.
func classifyFailure(err error) error {
	var f *render.Failure
	if stderrors.As(err, &f) {
		return f.Classified()
	}
	return errors.WrapError(err, errors.CategoryInternal, "failed to list markdown keys").Build()
}
