// Package outputs extracts the set of artifact keys a recipe declares as
// Markdown documents.
//
// Step declarations have accumulated four layouts over time, and a single
// declaration may mix them:
//
//	{"document_key": "k", "file_type": "markdown"}                         legacy
//	{"documents": [{"document_key": "k", "file_type": "markdown"}]}         documents
//	{"assembled_json": [{"document_key": "k", "template_filename": "k.md"}]} assembled JSON
//	{"files_to_generate": [{"from_document_key": "k", "template_filename": "k.md"}]}
//
// Rather than model these as a closed type, every declaration is treated as an
// untyped record and four tolerant passes run over its optional fields. A layout
// none of the passes recognize contributes no keys.
package outputs
