package internal

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest describes the document tree served by the shell. It is read from
// YAML or JSON; yaml.v3 accepts both.
type Manifest struct {
	Posts []ManifestEntry `json:"posts" yaml:"posts"`
}

// ManifestEntry is one directory or file in the manifest
type ManifestEntry struct {
	Name     string          `json:"name" yaml:"name"`
	Type     string          `json:"type" yaml:"type"` // "dir" or "file"
	Icon     string          `json:"icon,omitempty" yaml:"icon,omitempty"`
	Title    string          `json:"title,omitempty" yaml:"title,omitempty"`
	Date     string          `json:"date,omitempty" yaml:"date,omitempty"`
	Category string          `json:"category,omitempty" yaml:"category,omitempty"`
	Path     string          `json:"path,omitempty" yaml:"path,omitempty"`
	URL      string          `json:"url,omitempty" yaml:"url,omitempty"`
	Content  []ManifestEntry `json:"content,omitempty" yaml:"content,omitempty"`
}

// DownloadEntry is a file listed under [[download]] in config.toml. These
// are exposed in a generated "download" directory.
type DownloadEntry struct {
	Name  string `toml:"name" json:"name"`
	Title string `toml:"title" json:"title,omitempty"`
	Date  string `toml:"date" json:"date,omitempty"`
	URL   string `toml:"url" json:"url"`
}

const (
	entryTypeDir  = "dir"
	entryTypeFile = "file"

	downloadDirName = "download"
)

// ParseManifest parses manifest bytes
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &ManifestError{Err: fmt.Errorf("failed to unmarshal manifest: %w", err)}
	}
	if err := validateEntries("/", m.Posts); err != nil {
		return nil, &ManifestError{Err: err}
	}
	return &m, nil
}

// LoadManifest reads and parses a manifest file
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "read", Err: err}
	}
	m, err := ParseManifest(data)
	if err != nil {
		var me *ManifestError
		if errors.As(err, &me) {
			me.Path = path
		}
		return nil, err
	}
	return m, nil
}

// DefaultManifest returns the embedded demo manifest
func DefaultManifest() *Manifest {
	m, err := ParseManifest(defaultManifestYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded manifest is invalid: %v", err))
	}
	return m
}

// WithDownloads returns a copy of the manifest with a generated download
// directory. Entries without a name or URL are skipped.
func (m *Manifest) WithDownloads(downloads []DownloadEntry) *Manifest {
	if len(downloads) == 0 {
		return m
	}
	dir := ManifestEntry{Name: downloadDirName, Type: entryTypeDir, Icon: "📥"}
	for _, d := range downloads {
		if d.Name == "" || d.URL == "" {
			continue
		}
		dir.Content = append(dir.Content, ManifestEntry{
			Name:     d.Name,
			Type:     entryTypeFile,
			Title:    d.Title,
			Date:     d.Date,
			Category: downloadDirName,
			URL:      d.URL,
		})
	}
	out := &Manifest{Posts: make([]ManifestEntry, 0, len(m.Posts)+1)}
	for _, e := range m.Posts {
		if e.Name != downloadDirName {
			out.Posts = append(out.Posts, e)
		}
	}
	out.Posts = append(out.Posts, dir)
	return out
}

func validateEntries(dir string, entries []ManifestEntry) error {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return fmt.Errorf("entry without name in %s", dir)
		}
		if strings.Contains(e.Name, "/") || e.Name == "." || e.Name == ".." {
			return fmt.Errorf("invalid entry name %q in %s", e.Name, dir)
		}
		if seen[e.Name] {
			return fmt.Errorf("duplicate name %q in %s", e.Name, dir)
		}
		seen[e.Name] = true

		switch e.Type {
		case entryTypeDir:
			if err := validateEntries(JoinPath(dir, e.Name), e.Content); err != nil {
				return err
			}
		case entryTypeFile:
			if len(e.Content) > 0 {
				return fmt.Errorf("file %q in %s has children", e.Name, dir)
			}
		default:
			return fmt.Errorf("entry %q in %s has unknown type %q", e.Name, dir, e.Type)
		}
	}
	return nil
}
