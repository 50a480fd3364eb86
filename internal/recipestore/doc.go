// Package recipestore implements recipe.Reader on SQLite (modernc.org/sqlite,
// pure Go, no cgo) and loads YAML fixtures into it for local runs and tests.
//
// The schema mirrors the four relations the resolver reads: stages, the
// configuration instances stages point at, shared template steps and
// per-instance cloned steps. Outputs declarations are stored as JSON text; a
// column holding a JSON string literal is handed back as encoded text so the
// caller decodes it, exactly like a declaration that arrived double encoded.
package recipestore
