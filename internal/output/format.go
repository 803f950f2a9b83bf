// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tudo/internal/provider"
)

// FormatTasklist formats a tasklist line for the lists command.
// Format: "{TITLE}  ({OPEN}/{TOTAL} open)\n"
func FormatTasklist(w io.Writer, list provider.Tasklist) {
	fmt.Fprintf(w, "%s  (%d/%d open)\n", NormalizeTitle(list.Title), list.Open(), list.Len())
}

// NormalizeTitle normalizes a title for single-line display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
