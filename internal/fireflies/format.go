package fireflies

import (
	"fmt"
	"strings"
)

// FormatTranscript renders a transcript as plain text for clipboard or file
// delivery. Processing meetings without sentences get a placeholder note
// instead of an empty transcript body.
func FormatTranscript(t *Transcript) string {
	var b strings.Builder

	title := t.Title
	if title == "" {
		title = "Untitled Meeting"
	}
	fmt.Fprintf(&b, "=== %s (%s) ===\n\n", title, t.DateString)

	if t.Summary != nil && t.Summary.Overview != "" {
		fmt.Fprintf(&b, "Summary: %s\n\n", t.Summary.Overview)
	}

	if len(t.Sentences) == 0 {
		fmt.Fprintf(&b, "Note: Meeting '%s' is still processing. Transcript not available yet.\n", title)
		return b.String()
	}

	b.WriteString("Transcript:\n")
	for _, s := range t.Sentences {
		fmt.Fprintf(&b, "%s: %s\n", s.Speaker(), s.Content())
	}
	return b.String()
}

// FormatTranscripts renders multiple transcripts separated by blank lines.
func FormatTranscripts(transcripts []*Transcript) string {
	parts := make([]string, 0, len(transcripts))
	for _, t := range transcripts {
		parts = append(parts, FormatTranscript(t))
	}
	return strings.Join(parts, "\n\n")
}
