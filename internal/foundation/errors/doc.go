// Package errors provides the classified error primitives used across rendergate.
//
// Every failure that leaves a package boundary carries a category (what kind of
// failure), a severity (how bad), a retry strategy (whether a caller may try again)
// and free-form context. Adapters translate the classification into process exit
// codes for the CLI and status codes for the HTTP surface.
//
// Example usage:
//
//	err := errors.WrapError(driverErr, errors.CategoryStore, "query stage").
//		Retryable().
//		WithContext("stage", slug).
//		Build()
package errors
