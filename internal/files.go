package internal

import (
	"context"
	"strings"
)

// FileService reads and writes files by shell name. Writes never touch the
// manifest tree: config.toml goes to the settings store and everything else
// is kept as an override in the state store.
type FileService struct {
	fsys     *FileSystem
	settings *SettingsStore
	store    StateStore
	content  ContentSource
}

// NewFileService creates a FileService
func NewFileService(fsys *FileSystem, settings *SettingsStore, store StateStore, content ContentSource) *FileService {
	return &FileService{fsys: fsys, settings: settings, store: store, content: content}
}

// ReadFile returns the contents of name as seen from cwd. Overrides win,
// then the settings document, then the article itself.
func (f *FileService) ReadFile(ctx context.Context, cwd, name string) (string, error) {
	p, node := f.target(cwd, name)

	if v, ok, err := f.store.Get(FileOverrideKey(p)); err != nil {
		LogWarn("Failed to read override for %s: %v", p, err)
	} else if ok {
		return v, nil
	}

	if p == "/"+ConfigFileName {
		return f.settings.Raw(), nil
	}
	if node == nil {
		return "", &NotFoundError{What: "File", Name: name}
	}
	if node.IsDir() {
		return "", &NotFoundError{What: "File", Name: name}
	}
	if node.IsConfig() {
		return f.settings.Raw(), nil
	}

	locator := node.Source
	if locator == "" {
		locator = node.URL
	}
	if locator == "" {
		return "", &NotFoundError{What: "File", Name: name}
	}
	data, err := f.content.Open(ctx, locator)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteFile stores content under name. It reports false when the write was
// refused or did not persist.
func (f *FileService) WriteFile(cwd, name, content string) bool {
	if err := f.writeFile(cwd, name, content); err != nil {
		LogWarn("Failed to write %s: %v", name, err)
		return false
	}
	return true
}

func (f *FileService) writeFile(cwd, name, content string) error {
	p, node := f.target(cwd, name)
	if p == "/"+ConfigFileName {
		return f.settings.Replace(content)
	}
	if strings.HasSuffix(name, "/") || (node != nil && node.IsDir()) {
		return &UsageError{Msg: name + ": is a directory"}
	}
	if node != nil && isArticle(node) {
		return &UsageError{Msg: name + ": is read-only"}
	}
	if err := f.store.Put(FileOverrideKey(p), content); err != nil {
		return &PersistenceError{Op: "file", Err: err}
	}
	return nil
}

// Writable reports whether name can be saved from cwd. Articles from the
// manifest are read-only; config.toml and new files are not.
func (f *FileService) Writable(cwd, name string) bool {
	p, node := f.target(cwd, name)
	if p == "/"+ConfigFileName || node == nil {
		return true
	}
	return !node.IsDir() && !isArticle(node)
}

// target resolves name the way cat does: the path itself, then a file of
// that name anywhere in the tree. The returned path keys overrides; node is
// nil for a file that does not exist yet.
func (f *FileService) target(cwd, name string) (string, *Node) {
	p := ResolvePath(cwd, name)
	if p == "/"+ConfigFileName {
		return p, nil
	}
	if node, err := f.fsys.Lookup(p); err == nil {
		return p, node
	}
	if node, found, ok := f.fsys.FindFile(cwd, name); ok {
		return found, node
	}
	return p, nil
}

func isArticle(node *Node) bool {
	return node.Source != "" || node.URL != ""
}

// Overrides lists the paths of stored pseudo files
func (f *FileService) Overrides() ([]string, error) {
	keys, err := f.store.Keys(fileOverridePx)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(keys))
	for _, k := range keys {
		paths = append(paths, strings.TrimPrefix(k, fileOverridePx))
	}
	return paths, nil
}

// ClearOverrides deletes every stored pseudo file
func (f *FileService) ClearOverrides() error {
	paths, err := f.Overrides()
	if err != nil {
		return err
	}
	for _, p := range paths {
		if err := f.store.Delete(FileOverrideKey(p)); err != nil {
			return &PersistenceError{Op: "file", Err: err}
		}
	}
	return nil
}
