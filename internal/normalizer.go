package internal

import (
	"strings"
	"time"
)

// TranscriptEntry is one conversation flattened to text
type TranscriptEntry struct {
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Dir       string `json:"dir" yaml:"dir"`
	Command   string `json:"command" yaml:"command"`
	Output    string `json:"output" yaml:"output"`
	Failed    bool   `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// Normalizer converts conversations into plain records for export
type Normalizer struct{}

// NewNormalizer creates a new normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// NormalizeConversation flattens one conversation. Progress bars keep only
// their final state since the log already replaced earlier ones.
func (n *Normalizer) NormalizeConversation(conv Conversation) TranscriptEntry {
	entry := TranscriptEntry{
		Timestamp: formatTimestamp(conv.IssuedAt),
		Dir:       conv.Dir,
		Command:   conv.Command,
	}
	lines := make([]string, 0, len(conv.Outputs))
	for _, ev := range conv.Outputs {
		if ev.Kind == OutputError {
			entry.Failed = true
		}
		if text := ev.PlainText(); text != "" {
			lines = append(lines, text)
		}
	}
	entry.Output = strings.Join(lines, "\n")
	return entry
}

// NormalizeTranscript flattens every conversation of a transcript
func (n *Normalizer) NormalizeTranscript(t *Transcript) []TranscriptEntry {
	entries := make([]TranscriptEntry, 0, len(t.Conversations))
	for _, conv := range t.Conversations {
		entries = append(entries, n.NormalizeConversation(conv))
	}
	return entries
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
