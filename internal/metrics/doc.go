// Package metrics provides observability hooks for render decisions.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection never requires nil checks at call sites.
// When metrics are enabled the CLI swaps in a PrometheusRecorder bound to a
// registry that HTTPHandler exposes.
package metrics
