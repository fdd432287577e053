package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/termblog/internal"
)

// MarkdownExporter exports transcripts in Markdown format
type MarkdownExporter struct{}

// Export exports a transcript to Markdown format
func (e *MarkdownExporter) Export(t *internal.Transcript, w io.Writer) error {
	entries := internal.NewNormalizer().NormalizeTranscript(t)

	// Header
	_, _ = fmt.Fprintf(w, "# Transcript %s\n\n", t.ID)

	if t.User != "" {
		_, _ = fmt.Fprintf(w, "**User:** %s  \n", escapeMarkdown(t.User))
	}
	if started := formatTime(t.StartedAt); started != "" {
		_, _ = fmt.Fprintf(w, "**Started:** %s  \n", started)
	}
	_, _ = fmt.Fprintf(w, "**Commands:** %d\n\n", len(entries))

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Commands\n\n")

	for i, entry := range entries {
		timestamp := ""
		if entry.Timestamp != "" {
			timestamp = fmt.Sprintf(" (%s)", entry.Timestamp)
		}
		_, _ = fmt.Fprintf(w, "**%s $** `%s`%s\n\n", escapeMarkdown(entry.Dir), entry.Command, timestamp)

		if entry.Output != "" {
			fence := codeFence(entry.Output)
			_, _ = fmt.Fprintf(w, "%stext\n%s\n%s\n\n", fence, entry.Output, fence)
		}

		// Add horizontal rule after each command (except the last one)
		if i < len(entries)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// codeFence returns a backtick fence longer than any run inside text
func codeFence(text string) string {
	longest, run := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}

// escapeMarkdown escapes markdown emphasis markers
func escapeMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "\\*\\*")
	text = strings.ReplaceAll(text, "__", "\\_\\_")
	return text
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
