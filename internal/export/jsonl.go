package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/termblog/internal"
)

// JSONLExporter exports transcripts in JSONL format (one conversation per line)
type JSONLExporter struct{}

// Export exports a transcript to JSONL format
func (e *JSONLExporter) Export(t *internal.Transcript, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, entry := range internal.NewNormalizer().NormalizeTranscript(t) {
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("failed to encode conversation: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
