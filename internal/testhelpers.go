package internal

import (
	"context"
	"testing"
	"time"
)

// CreateTestFileSystem builds the filesystem of the embedded demo manifest
func CreateTestFileSystem(t *testing.T) *FileSystem {
	t.Helper()
	fsys, err := NewFileSystem(DefaultManifest())
	if err != nil {
		t.Fatalf("Failed to build test filesystem: %v", err)
	}
	return fsys
}

// CreateTestSettings creates a settings store over a memory store, seeded
// with the embedded config
func CreateTestSettings(t *testing.T, store StateStore) *SettingsStore {
	t.Helper()
	settings := NewSettingsStore(store, nil)
	if err := settings.Reload(context.Background()); err != nil {
		t.Fatalf("Failed to load test settings: %v", err)
	}
	return settings
}

// CreateTestShell creates a session over the demo filesystem with the
// given registry and an in-memory state store. It is closed on cleanup.
func CreateTestShell(t *testing.T, reg *Registry) *Session {
	t.Helper()
	store := NewMemStore()
	s, err := NewSession(SessionConfig{
		FileSystem: CreateTestFileSystem(t),
		Registry:   reg,
		Settings:   CreateTestSettings(t, store),
		Store:      store,
		Content:    NewFSContent(DefaultContent()),
	})
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// CreateTestTranscript creates a transcript with one conversation per
// command, each with a single text output
func CreateTestTranscript(id string, commands ...string) *Transcript {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	t := &Transcript{
		ID:        id,
		User:      "Guest",
		StartedAt: start,
		EndedAt:   start.Add(time.Minute),
	}
	for i, c := range commands {
		t.Conversations = append(t.Conversations, Conversation{
			ID:       id + "-" + c,
			Command:  c,
			Dir:      "/",
			IssuedAt: start.Add(time.Duration(i) * time.Second),
			Outputs:  []OutputEvent{{Kind: OutputText, Text: "output of " + c}},
		})
	}
	return t
}
