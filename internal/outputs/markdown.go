package outputs

import (
	"strings"

	"golang.org/x/text/cases"
)

const fileTypeMarkdown = "markdown"

var markdownSuffixes = []string{".md", ".markdown"}

// IsMarkdownTemplate reports whether a template filename names a Markdown file.
// The comparison is case-insensitive under Unicode case folding.
func IsMarkdownTemplate(name string) bool {
	folded := cases.Fold().String(name)
	for _, suffix := range markdownSuffixes {
		if strings.HasSuffix(folded, suffix) {
			return true
		}
	}
	return false
}
