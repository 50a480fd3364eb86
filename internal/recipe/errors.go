package recipe

import (
	"git.home.luguber.info/inful/rendergate/internal/foundation/errors"
)

var (
	// ErrStageNotFound indicates no stage matches the requested slug.
	ErrStageNotFound = errors.NotFoundError("stage not found").Build()

	// ErrInstanceNotFound indicates no configuration instance matches the requested id.
	ErrInstanceNotFound = errors.NotFoundError("recipe instance not found").Build()

	// ErrQueryFailed indicates the store could not complete a read.
	ErrQueryFailed = errors.StoreError("recipe store query failed").Build()
)
