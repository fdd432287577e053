package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// TranscriptArchive stores transcripts as JSON files with a YAML index
type TranscriptArchive struct {
	dir string
}

// ArchiveMetadata stores metadata about the archive
type ArchiveMetadata struct {
	Version   string    `json:"version" yaml:"version"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// ArchiveIndexEntry represents a transcript entry in the index
type ArchiveIndexEntry struct {
	ID                string `yaml:"id"`
	User              string `yaml:"user,omitempty"`
	StartedAt         string `yaml:"started_at,omitempty"`
	EndedAt           string `yaml:"ended_at,omitempty"`
	ConversationCount int    `yaml:"conversation_count"`
	FirstCommand      string `yaml:"first_command,omitempty"`
}

// ArchiveIndex represents the YAML index of all transcripts
type ArchiveIndex struct {
	Transcripts []ArchiveIndexEntry `yaml:"transcripts"`
	Metadata    ArchiveMetadata     `yaml:"metadata"`
}

const archiveVersion = "1.0"

// NewTranscriptArchive creates an archive rooted at dir
func NewTranscriptArchive(dir string) *TranscriptArchive {
	return &TranscriptArchive{dir: dir}
}

// Dir returns the archive directory
func (ta *TranscriptArchive) Dir() string {
	return ta.dir
}

// EnsureDir ensures the archive directory exists
func (ta *TranscriptArchive) EnsureDir() error {
	return os.MkdirAll(ta.dir, 0755)
}

// IndexPath returns the path to the index YAML file
func (ta *TranscriptArchive) IndexPath() string {
	return filepath.Join(ta.dir, "index.yaml")
}

// TranscriptPath returns the path to a transcript file
func (ta *TranscriptArchive) TranscriptPath(id string) string {
	return filepath.Join(ta.dir, fmt.Sprintf("transcript_%s.json", id))
}

// LoadIndex loads the index. A missing index is an empty one.
func (ta *TranscriptArchive) LoadIndex() (*ArchiveIndex, error) {
	data, err := os.ReadFile(ta.IndexPath())
	if os.IsNotExist(err) {
		return &ArchiveIndex{Metadata: ArchiveMetadata{Version: archiveVersion}}, nil
	}
	if err != nil {
		return nil, &StorageError{Path: ta.IndexPath(), Op: "read", Err: err}
	}

	var index ArchiveIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, &StorageError{Path: ta.IndexPath(), Op: "parse", Err: err}
	}
	return &index, nil
}

// SaveIndex saves the index
func (ta *TranscriptArchive) SaveIndex(index *ArchiveIndex) error {
	if err := ta.EnsureDir(); err != nil {
		return err
	}
	data, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	return os.WriteFile(ta.IndexPath(), data, 0644)
}

// Save writes a transcript and adds or updates its index entry
func (ta *TranscriptArchive) Save(t *Transcript) error {
	if err := ta.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}
	if err := os.WriteFile(ta.TranscriptPath(t.ID), data, 0644); err != nil {
		return &StorageError{Path: ta.TranscriptPath(t.ID), Op: "write", Err: err}
	}

	index, err := ta.LoadIndex()
	if err != nil {
		LogWarn("Rebuilding unreadable transcript index: %v", err)
		index = &ArchiveIndex{Metadata: ArchiveMetadata{Version: archiveVersion}}
	}
	now := time.Now()
	if index.Metadata.CreatedAt.IsZero() {
		index.Metadata.CreatedAt = now
	}
	index.Metadata.UpdatedAt = now

	entry := ArchiveIndexEntry{
		ID:                t.ID,
		User:              t.User,
		StartedAt:         formatTimestamp(t.StartedAt),
		EndedAt:           formatTimestamp(t.EndedAt),
		ConversationCount: len(t.Conversations),
		FirstCommand:      t.Title(),
	}
	found := false
	for i, e := range index.Transcripts {
		if e.ID == t.ID {
			index.Transcripts[i] = entry
			found = true
			break
		}
	}
	if !found {
		index.Transcripts = append(index.Transcripts, entry)
	}
	sort.SliceStable(index.Transcripts, func(i, j int) bool {
		return index.Transcripts[i].StartedAt > index.Transcripts[j].StartedAt
	})
	return ta.SaveIndex(index)
}

// Load reads one transcript by full ID
func (ta *TranscriptArchive) Load(id string) (*Transcript, error) {
	data, err := os.ReadFile(ta.TranscriptPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{What: "Transcript", Name: id}
		}
		return nil, &StorageError{Path: ta.TranscriptPath(id), Op: "read", Err: err}
	}

	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transcript: %w", err)
	}
	return &t, nil
}

// Find loads the transcript whose ID starts with prefix. An ambiguous
// prefix is an error.
func (ta *TranscriptArchive) Find(prefix string) (*Transcript, error) {
	index, err := ta.LoadIndex()
	if err != nil {
		return nil, err
	}
	var matches []string
	for _, e := range index.Transcripts {
		if e.ID == prefix {
			return ta.Load(e.ID)
		}
		if strings.HasPrefix(e.ID, prefix) {
			matches = append(matches, e.ID)
		}
	}
	switch len(matches) {
	case 0:
		return nil, &NotFoundError{What: "Transcript", Name: prefix}
	case 1:
		return ta.Load(matches[0])
	default:
		return nil, fmt.Errorf("transcript id %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

// LoadAll loads every indexed transcript, newest first
func (ta *TranscriptArchive) LoadAll() ([]*Transcript, error) {
	index, err := ta.LoadIndex()
	if err != nil {
		return nil, err
	}

	var transcripts []*Transcript
	for _, entry := range index.Transcripts {
		t, err := ta.Load(entry.ID)
		if err != nil {
			LogWarn("Skipping transcript %s: %v", entry.ID, err)
			continue
		}
		transcripts = append(transcripts, t)
	}
	return transcripts, nil
}

// Clear deletes every transcript and the index
func (ta *TranscriptArchive) Clear() error {
	index, err := ta.LoadIndex()
	if err == nil {
		for _, entry := range index.Transcripts {
			_ = os.Remove(ta.TranscriptPath(entry.ID))
		}
	}
	if err := os.Remove(ta.IndexPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
