package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iksnae/termblog/internal"
)

func TestJSONExporter_Export(t *testing.T) {
	tr := internal.CreateTestTranscript("t1", "ls")
	tr.Conversations[0].Outputs = []internal.OutputEvent{{
		Kind:    internal.OutputDir,
		Entries: []internal.DirEntry{{Name: "posts", IsDir: true}},
	}}

	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(tr, &buf); err != nil {
		t.Fatalf("JSONExporter.Export() error = %v", err)
	}

	var got internal.Transcript
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if diff := cmp.Diff(tr.Conversations[0].Outputs, got.Conversations[0].Outputs); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if !bytes.Contains(buf.Bytes(), []byte("\n  \"id\": \"t1\"")) {
		t.Errorf("output is not indented:\n%s", buf.String())
	}
}

func TestJSONExporter_Extension(t *testing.T) {
	if got := (&JSONExporter{}).Extension(); got != "json" {
		t.Errorf("JSONExporter.Extension() = %v, want json", got)
	}
}
