package render

import (
	"fmt"

	"git.home.luguber.info/inful/rendergate/internal/foundation/errors"
)

// Failure carries an early-exit Decision through APIs that return errors.
type Failure struct {
	Stage    string
	Decision Decision
}

func (f *Failure) Error() string {
	if f.Decision.Details == "" {
		return fmt.Sprintf("stage %q: %s", f.Stage, f.Decision.Reason)
	}
	return fmt.Sprintf("stage %q: %s: %s", f.Stage, f.Decision.Reason, f.Decision.Details)
}

// Classified maps the failure onto an error category. Lookups that found
// nothing are not_found.
func (f *Failure) Classified() *errors.ClassifiedError {
	var b *errors.ErrorBuilder
	switch f.Decision.Reason {
	case ReasonParseError:
		b = errors.DecodeError("step outputs could not be decoded")
	case ReasonQueryError:
		b = errors.StoreError("recipe store query failed")
	case ReasonNoActiveRecipe:
		b = errors.NotFoundError("stage has no active recipe")
	case ReasonInstanceNotFound:
		b = errors.NotFoundError("recipe instance not found")
	case ReasonStepsNotFound:
		b = errors.NotFoundError("recipe steps not found")
	default:
		b = errors.NotFoundError("stage not found")
	}
	b = b.WithContext("stage", f.Stage).WithContext("reason", string(f.Decision.Reason))
	if f.Decision.Details != "" {
		b = b.WithContext("details", f.Decision.Details)
	}
	return b.Build()
}
