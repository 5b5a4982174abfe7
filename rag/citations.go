package rag

import (
	"fmt"
	"strings"

	"github.com/vitalpoint/docbase/core"
)

// FormatCitations renders a numbered source list for the given chunks,
// deduplicated by (title, source) in first-seen order. Returns an empty
// string when there is nothing to cite.
func FormatCitations(chunks []core.DocumentChunk) string {
	if len(chunks) == 0 {
		return ""
	}

	seen := make(map[string]bool)
	var b strings.Builder
	n := 0
	for _, chunk := range chunks {
		key := chunk.Title + "|" + chunk.Source
		if seen[key] {
			continue
		}
		seen[key] = true
		n++

		if n == 1 {
			b.WriteString("\n\nSources:\n")
		}
		if chunk.Source != "" {
			fmt.Fprintf(&b, "[%d] %s - %s\n", n, chunk.Title, chunk.Source)
		} else {
			fmt.Fprintf(&b, "[%d] %s\n", n, chunk.Title)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
