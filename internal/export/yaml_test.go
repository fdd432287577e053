package export

import (
	"bytes"
	"testing"

	"github.com/iksnae/termblog/internal"
	"gopkg.in/yaml.v3"
)

func TestYAMLExporter_Export(t *testing.T) {
	tr := internal.CreateTestTranscript("t1", "ls", "pwd")

	var buf bytes.Buffer
	if err := (&YAMLExporter{}).Export(tr, &buf); err != nil {
		t.Fatalf("YAMLExporter.Export() error = %v", err)
	}

	var got yamlTranscript
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if got.ID != "t1" || got.User != "Guest" || got.StartedAt != "2024-01-02T03:04:05Z" {
		t.Errorf("header = %+v", got)
	}
	if len(got.Conversations) != 2 || got.Conversations[1].Output != "output of pwd" {
		t.Errorf("conversations = %+v", got.Conversations)
	}
}

func TestYAMLExporter_Extension(t *testing.T) {
	if got := (&YAMLExporter{}).Extension(); got != "yaml" {
		t.Errorf("YAMLExporter.Extension() = %v, want yaml", got)
	}
}
