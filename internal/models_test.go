package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name: "yaml",
			data: "posts:\n  - name: a.md\n    type: file\n    date: \"2024-01-01\"\n",
		},
		{
			name: "json",
			data: `{"posts":[{"name":"d","type":"dir","content":[{"name":"x.md","type":"file"}]}]}`,
		},
		{
			name:    "unknown type",
			data:    "posts:\n  - name: a\n    type: link\n",
			wantErr: true,
		},
		{
			name:    "slash in name",
			data:    "posts:\n  - name: a/b\n    type: file\n",
			wantErr: true,
		},
		{
			name:    "nested duplicate",
			data:    `{"posts":[{"name":"d","type":"dir","content":[{"name":"x","type":"file"},{"name":"x","type":"dir"}]}]}`,
			wantErr: true,
		},
		{
			name:    "not a manifest",
			data:    "posts: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseManifest() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadManifest_SetsPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "posts.yaml")
	if err := os.WriteFile(path, []byte("posts:\n  - name: x\n    type: bogus\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadManifest(path)
	var me *ManifestError
	if !errors.As(err, &me) || me.Path != path {
		t.Errorf("LoadManifest() error = %v, want ManifestError for %s", err, path)
	}
}

func TestManifestDefaults(t *testing.T) {
	m, err := ParseManifest([]byte(`{"posts":[{"name":"d","type":"dir","content":[{"name":"x.md","type":"file"}]}]}`))
	if err != nil {
		t.Fatal(err)
	}
	fsys, err := NewFileSystem(m)
	if err != nil {
		t.Fatal(err)
	}
	n, err := fsys.Lookup("/d/x.md")
	if err != nil {
		t.Fatal(err)
	}
	if n.Title != "x" || n.Category != "d" {
		t.Errorf("defaults = title %q category %q, want x and d", n.Title, n.Category)
	}
}

func TestManifest_WithDownloads(t *testing.T) {
	m := DefaultManifest().WithDownloads([]DownloadEntry{
		{Name: "cv.pdf", URL: "https://example.com/cv.pdf"},
		{Name: "broken"},
	})
	fsys, err := NewFileSystem(m)
	if err != nil {
		t.Fatal(err)
	}
	children, err := fsys.ListChildren("/download")
	if err != nil {
		t.Fatalf("download dir missing: %v", err)
	}
	if len(children) != 1 || children[0].URL != "https://example.com/cv.pdf" {
		t.Errorf("download children = %+v", children)
	}
}

func TestDefaultManifest(t *testing.T) {
	if _, err := NewFileSystem(DefaultManifest()); err != nil {
		t.Fatalf("embedded manifest does not build: %v", err)
	}
}
