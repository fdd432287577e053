package internal

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFileSystem_Lookup(t *testing.T) {
	fsys := CreateTestFileSystem(t)

	tests := []struct {
		name    string
		path    string
		wantDir bool
		wantErr bool
	}{
		{"root", "/", true, false},
		{"dir", "/posts", true, false},
		{"trailing slash", "/posts/", true, false},
		{"nested file", "/posts/go/channels.md", false, false},
		{"synthetic config", "/config.toml", false, false},
		{"missing", "/nope", false, true},
		{"through a file", "/about.md/x", false, true},
		{"relative", "posts", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := fsys.Lookup(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Lookup(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("Lookup(%q) error = %v, want ErrNotFound", tt.path, err)
				}
				return
			}
			if n.IsDir() != tt.wantDir {
				t.Errorf("Lookup(%q).IsDir() = %v, want %v", tt.path, n.IsDir(), tt.wantDir)
			}
		})
	}
}

func TestFileSystem_ListChildren(t *testing.T) {
	fsys := CreateTestFileSystem(t)

	children, err := fsys.ListChildren("/")
	if err != nil {
		t.Fatalf("ListChildren(/) error = %v", err)
	}
	var names []string
	for _, c := range children {
		names = append(names, c.Name)
	}
	want := []string{"posts", "notes", "about.md", "config.toml"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("ListChildren(/) mismatch (-want +got):\n%s", diff)
	}

	if _, err := fsys.ListChildren("/about.md"); err == nil {
		t.Error("ListChildren() on a file should fail")
	}
}

func TestFileSystem_Names(t *testing.T) {
	fsys := CreateTestFileSystem(t)

	tests := []struct {
		kind ArgKind
		dir  string
		want []string
	}{
		{ArgDirs, "/", []string{"notes", "posts"}},
		{ArgFiles, "/", []string{"about.md", "config.toml"}},
		{ArgAny, "/posts", []string{"go", "hello-world.md"}},
		{ArgNone, "/", nil},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String()+tt.dir, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, fsys.Names(tt.dir, tt.kind)); diff != "" {
				t.Errorf("Names(%q, %v) mismatch (-want +got):\n%s", tt.dir, tt.kind, diff)
			}
		})
	}
}

func TestFileSystem_FindFile(t *testing.T) {
	fsys := CreateTestFileSystem(t)

	n, p, ok := fsys.FindFile("/", "errors.md")
	if !ok {
		t.Fatal("FindFile() did not search the whole tree")
	}
	if p != "/posts/go/errors.md" || n.Title != "Wrapping Errors" {
		t.Errorf("FindFile() = %q %q", p, n.Title)
	}

	if _, p, ok := fsys.FindFile("/posts", "go/channels.md"); !ok || p != "/posts/go/channels.md" {
		t.Errorf("FindFile() relative path = %q, %v", p, ok)
	}
	if _, _, ok := fsys.FindFile("/", "posts"); ok {
		t.Error("FindFile() should not return directories")
	}
	if n, _, ok := fsys.FindFile("/", ConfigFileName); !ok || !n.IsConfig() {
		t.Error("FindFile() should return the synthetic config at the root")
	}
}

func TestNewFileSystem_RejectsDuplicates(t *testing.T) {
	m := &Manifest{Posts: []ManifestEntry{
		{Name: "a.md", Type: "file"},
		{Name: "a.md", Type: "file"},
	}}
	_, err := NewFileSystem(m)
	var me *ManifestError
	if !errors.As(err, &me) {
		t.Fatalf("NewFileSystem() error = %v, want ManifestError", err)
	}
}

func TestFileSystem_Walk(t *testing.T) {
	fsys := CreateTestFileSystem(t)
	var paths []string
	_ = fsys.Walk(func(p string, n *Node, depth int) error {
		paths = append(paths, p)
		return nil
	})
	want := []string{
		"/posts", "/posts/go", "/posts/go/channels.md", "/posts/go/errors.md",
		"/posts/hello-world.md", "/notes", "/notes/shell-tips.md", "/about.md",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("Walk() mismatch (-want +got):\n%s", diff)
	}
}
