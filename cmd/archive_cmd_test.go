package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iksnae/termblog/internal"
)

func seedArchive(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	archive := internal.NewTranscriptArchive(filepath.Join(dir, "transcripts"))
	for _, tr := range []*internal.Transcript{
		internal.CreateTestTranscript("aaaa1111-first", "ls", "cat readme.md", "pwd"),
		internal.CreateTestTranscript("bbbb2222-second", "tree"),
	} {
		if err := archive.Save(tr); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestListCommand(t *testing.T) {
	dir := seedArchive(t)
	if _, err := executeCommand(t, nil, "list", "--data-dir", dir); err != nil {
		t.Errorf("list failed: %v", err)
	}
	if _, err := executeCommand(t, nil, "list", "--data-dir", t.TempDir()); err != nil {
		t.Errorf("list on empty archive failed: %v", err)
	}
}

func TestShowCommand(t *testing.T) {
	dir := seedArchive(t)

	out, err := executeCommand(t, nil, "show", "aaaa", "--data-dir", dir, "--limit", "2")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	for _, want := range []string{"aaaa1111-first", "Commands: 3", "Guest@termblog:/$ ls", "output of cat readme.md", "1 more command"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "output of pwd") {
		t.Error("show printed past --limit")
	}

	if _, err := executeCommand(t, nil, "show", "zzzz", "--data-dir", dir); err == nil {
		t.Error("show with unknown id should fail")
	}
}

func TestExportCommand(t *testing.T) {
	dir := seedArchive(t)
	outDir := filepath.Join(dir, "out")

	tests := []struct {
		name      string
		args      []string
		wantFiles int
		wantErr   bool
	}{
		{
			name:    "invalid format",
			args:    []string{"--format", "invalid"},
			wantErr: true,
		},
		{
			name:      "all transcripts",
			args:      []string{"--format", "json", "-o", filepath.Join(outDir, "all")},
			wantFiles: 2,
		},
		{
			name:      "one transcript by prefix",
			args:      []string{"--format", "md", "--id", "bbbb", "-o", filepath.Join(outDir, "one")},
			wantFiles: 1,
		},
		{
			name:    "unknown id",
			args:    []string{"--id", "nope", "-o", filepath.Join(outDir, "none")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"export", "--data-dir", dir}, tt.args...)
			_, err := executeCommand(t, nil, args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("export error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			files, err := os.ReadDir(outputDir)
			if err != nil {
				t.Fatal(err)
			}
			if len(files) != tt.wantFiles {
				t.Errorf("exported %d files, want %d", len(files), tt.wantFiles)
			}
		})
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		stamp string
		want  string
	}{
		{"", "—"},
		{"2024-06-10T09:30:00Z", "Today 09:30"},
		{"2024-06-07T09:30:00Z", "Fri 09:30"},
		{"2024-01-15T09:30:00Z", "Jan 15 09:30"},
		{"2022-01-15T09:30:00Z", "2022-01-15"},
		{"2022-01-15 garbage", "2022-01-15"},
	}
	for _, tt := range tests {
		if got := relativeTime(tt.stamp, now); got != tt.want {
			t.Errorf("relativeTime(%q) = %q, want %q", tt.stamp, got, tt.want)
		}
	}
}
