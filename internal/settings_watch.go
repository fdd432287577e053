package internal

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// SettingsWatcher re-imports a config.toml file into the settings store
// whenever it changes on disk
type SettingsWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	settings *SettingsStore
	path     string
	onReload func()
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewSettingsWatcher creates a watcher for path. onReload, if set, runs
// after each successful import.
func NewSettingsWatcher(path string, settings *SettingsStore, onReload func()) (*SettingsWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, err
	}
	return &SettingsWatcher{
		watcher:  watcher,
		settings: settings,
		path:     abs,
		onReload: onReload,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. The parent directory is watched so editors that
// replace the file by rename are still seen.
func (sw *SettingsWatcher) Start(ctx context.Context) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.running {
		return nil
	}
	if err := sw.watcher.Add(filepath.Dir(sw.path)); err != nil {
		return err
	}
	sw.running = true
	go sw.run(ctx)
	LogDebug("Watching %s for settings changes", sw.path)
	return nil
}

// Stop stops the watcher and waits for its goroutine
func (sw *SettingsWatcher) Stop() {
	sw.mu.Lock()
	if !sw.running {
		sw.mu.Unlock()
		_ = sw.watcher.Close()
		return
	}
	sw.running = false
	sw.mu.Unlock()

	close(sw.stopCh)
	<-sw.doneCh
	if err := sw.watcher.Close(); err != nil {
		LogWarn("Error closing settings watcher: %v", err)
	}
}

func (sw *SettingsWatcher) run(ctx context.Context) {
	defer close(sw.doneCh)
	for {
		select {
		case <-ctx.Done():
			return
		case <-sw.stopCh:
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != sw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			sw.reload()
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			LogWarn("Settings watcher error: %v", err)
		}
	}
}

func (sw *SettingsWatcher) reload() {
	data, err := os.ReadFile(sw.path)
	if err != nil {
		LogWarn("Failed to read %s: %v", sw.path, err)
		return
	}
	if err := sw.settings.Replace(string(data)); err != nil {
		LogWarn("Ignoring settings change in %s: %v", sw.path, err)
		return
	}
	LogInfo("Reloaded settings from %s", sw.path)
	if sw.onReload != nil {
		sw.onReload()
	}
}

// FileSeed returns a SeedFunc reading path, falling back to the built-in
// document when path is empty
func FileSeed(path string) SeedFunc {
	if path == "" {
		return StaticSeed(DefaultConfig())
	}
	return func() (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", &StorageError{Path: path, Op: "read", Err: err}
		}
		return string(data), nil
	}
}
