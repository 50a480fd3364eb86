// Package recipe defines the read model of the recipe store: stages, the
// configuration instance a stage currently points at, and the step definitions
// that instance runs. Steps come from one of two tables. Template steps are
// shared by every non-cloned instance of a template; cloned steps belong to a
// single instance.
package recipe
