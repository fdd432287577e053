package export

import (
	"io"
	"time"

	"github.com/iksnae/termblog/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports transcripts in YAML format
type YAMLExporter struct{}

type yamlTranscript struct {
	ID            string                     `yaml:"id"`
	User          string                     `yaml:"user,omitempty"`
	StartedAt     string                     `yaml:"started_at,omitempty"`
	EndedAt       string                     `yaml:"ended_at,omitempty"`
	Conversations []internal.TranscriptEntry `yaml:"conversations"`
}

// Export exports a transcript to YAML format
func (e *YAMLExporter) Export(t *internal.Transcript, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(yamlTranscript{
		ID:            t.ID,
		User:          t.User,
		StartedAt:     formatTime(t.StartedAt),
		EndedAt:       formatTime(t.EndedAt),
		Conversations: internal.NewNormalizer().NormalizeTranscript(t),
	})
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
