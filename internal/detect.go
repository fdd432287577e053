package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataPaths holds the locations of everything termblog writes
type DataPaths struct {
	BasePath string // ~/.termblog unless overridden
}

// DetectDataPaths returns the data directory, honouring an explicit
// override and then $TERMBLOG_HOME
func DetectDataPaths(override string) (DataPaths, error) {
	if override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return DataPaths{}, fmt.Errorf("failed to resolve data dir: %w", err)
		}
		return DataPaths{BasePath: abs}, nil
	}
	if env := os.Getenv("TERMBLOG_HOME"); env != "" {
		return DataPaths{BasePath: env}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return DataPaths{}, fmt.Errorf("failed to get home directory: %w", err)
	}
	return DataPaths{BasePath: filepath.Join(home, ".termblog")}, nil
}

// Ensure creates the data directory
func (dp DataPaths) Ensure() error {
	if err := os.MkdirAll(dp.BasePath, 0755); err != nil {
		return &StorageError{Path: dp.BasePath, Op: "create", Err: err}
	}
	return nil
}

// StateDBPath returns the SQLite state database path
func (dp DataPaths) StateDBPath() string {
	return filepath.Join(dp.BasePath, "state.db")
}

// BoltDBPath returns the bbolt state database path
func (dp DataPaths) BoltDBPath() string {
	return filepath.Join(dp.BasePath, "state.bolt")
}

// TranscriptDir returns the transcript archive directory
func (dp DataPaths) TranscriptDir() string {
	return filepath.Join(dp.BasePath, "transcripts")
}

// DownloadDir returns the directory wget writes into
func (dp DataPaths) DownloadDir() string {
	return filepath.Join(dp.BasePath, "downloads")
}

// LogPath returns the log file used while the terminal UI owns the screen
func (dp DataPaths) LogPath() string {
	return filepath.Join(dp.BasePath, "termblog.log")
}

// StateDBExists checks if the SQLite state database exists
func (dp DataPaths) StateDBExists() bool {
	_, err := os.Stat(dp.StateDBPath())
	return err == nil
}
