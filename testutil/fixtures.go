package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// SampleManifest is a small manifest with one nested directory
const SampleManifest = `posts:
  - name: blog
    type: dir
    content:
      - name: first.md
        type: file
        title: First Post
        date: "2024-02-01"
        path: blog/first.md
      - name: second.md
        type: file
        date: "2024-03-01"
        path: blog/second.md
  - name: readme.md
    type: file
    path: readme.md
`

// SampleContent is the article text served for SampleManifest
var SampleContent = map[string]string{
	"blog/first.md":  "# First\n\nfirst body\n",
	"blog/second.md": "# Second\n\nsecond body\n",
	"readme.md":      "read me\n",
}

// SampleConfig is a minimal settings document
const SampleConfig = `[app]
user = "Tester"

[ui]
fontSize = "16"
fontFamily = "Fira Code"

[theme]
current = "dark"
available = ["default", "dark"]
`

// CreateSiteFixture writes SampleManifest, SampleContent and SampleConfig
// under dir and returns the manifest path, the content root and the config
// path
func CreateSiteFixture(t *testing.T, dir string) (manifest, content, config string) {
	t.Helper()
	manifest = WriteFile(t, dir, "manifest.yaml", SampleManifest)
	content = filepath.Join(dir, "content")
	for name, body := range SampleContent {
		WriteFile(t, content, name, body)
	}
	config = WriteFile(t, dir, "config.toml", SampleConfig)
	return manifest, content, config
}

// CreateStateDBFixture creates a SQLite state database holding the given
// history lines and key/value rows
func CreateStateDBFixture(t *testing.T, dbPath string, history []string, kv map[string]string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	createStateTables(t, db)
	for _, line := range history {
		if _, err := db.Exec("INSERT INTO history (line) VALUES (?)", line); err != nil {
			t.Fatalf("Failed to insert history: %v", err)
		}
	}
	for k, v := range kv {
		if _, err := db.Exec("INSERT INTO kv (key, value) VALUES (?, ?)", k, v); err != nil {
			t.Fatalf("Failed to insert kv: %v", err)
		}
	}
}
