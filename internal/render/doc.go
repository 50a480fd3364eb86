// Package render decides whether an artifact produced by a pipeline stage must
// be rendered to Markdown before it is consumed downstream.
//
// A decision walks stage -> active configuration instance -> step collection ->
// Markdown key set, reading the store at most three times and holding no state
// between calls. Every outcome, including store failures, is returned as a
// Decision value; the resolver never returns an error.
package render
