package outputs

// Declaration field names as stored in recipe step rows.
const (
	fieldDocumentKey     = "document_key"
	fieldFromDocumentKey = "from_document_key"
	fieldFileType        = "file_type"
	fieldTemplateFile    = "template_filename"
	fieldDocuments       = "documents"
	fieldAssembledJSON   = "assembled_json"
	fieldFilesToGenerate = "files_to_generate"
)

// Rules normalizes a decoded declaration into a list of rule candidates.
// Lists pass through, nil becomes empty, and anything else is a single rule.
func Rules(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = m
		}
		return out
	default:
		return []any{t}
	}
}

// ExtractRule runs every extraction pass over one rule and registers the
// Markdown keys it declares. Non-record rules contribute nothing.
func ExtractRule(rule any, keys *KeySet) {
	record, ok := asRecord(rule)
	if !ok {
		return
	}

	// legacy: the rule itself names a document
	if record[fieldFileType] == fileTypeMarkdown {
		keys.Register(record[fieldDocumentKey])
	}

	for _, entry := range Rules(record[fieldDocuments]) {
		extractDocumentEntry(entry, keys)
	}
	for _, entry := range Rules(record[fieldAssembledJSON]) {
		extractDocumentEntry(entry, keys)
	}
	for _, entry := range Rules(record[fieldFilesToGenerate]) {
		extractFileEntry(entry, keys)
	}
}

// extractDocumentEntry handles entries of documents and assembled_json. An
// explicit file type wins; only an entry without one falls back to its template name.
func extractDocumentEntry(entry any, keys *KeySet) {
	record, ok := asRecord(entry)
	if !ok {
		return
	}
	fileType, hasFileType := stringField(record, fieldFileType)
	if hasFileType {
		if fileType == fileTypeMarkdown {
			keys.Register(record[fieldDocumentKey])
		}
		return
	}
	if name, ok := stringField(record, fieldTemplateFile); ok && IsMarkdownTemplate(name) {
		keys.Register(record[fieldDocumentKey])
	}
}

// extractFileEntry handles files_to_generate entries, which carry no file type.
func extractFileEntry(entry any, keys *KeySet) {
	record, ok := asRecord(entry)
	if !ok {
		return
	}
	if name, ok := stringField(record, fieldTemplateFile); ok && IsMarkdownTemplate(name) {
		keys.Register(record[fieldFromDocumentKey])
	}
}

func asRecord(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// stringField returns a non-empty string field.
func stringField(record map[string]any, name string) (string, bool) {
	s, ok := record[name].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
