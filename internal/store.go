package internal

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Keys used in the state store
const (
	SettingsKey    = "config.toml"
	fileOverridePx = "vfs:"
)

// StateStore persists the session state that outlives one run: the command
// history, the settings document and pseudo-file contents.
type StateStore interface {
	// AppendHistory adds a line and keeps only the newest limit entries.
	AppendHistory(line string, limit int) error
	// History returns entries oldest first.
	History() ([]string, error)
	ClearHistory() error

	Get(key string) (string, bool, error)
	Put(key, value string) error
	Delete(key string) error
	// Keys returns sorted keys starting with prefix.
	Keys(prefix string) ([]string, error)

	Close() error
}

// Store drivers
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverMemory = "memory"
)

// OpenStateStore opens the store for driver under paths
func OpenStateStore(driver string, paths DataPaths) (StateStore, error) {
	switch driver {
	case "", DriverSQLite:
		if err := paths.Ensure(); err != nil {
			return nil, err
		}
		return OpenSQLiteStore(paths.StateDBPath())
	case DriverBolt:
		if err := paths.Ensure(); err != nil {
			return nil, err
		}
		return OpenBoltStore(paths.BoltDBPath())
	case DriverMemory:
		return NewMemStore(), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s (supported: sqlite, bolt, memory)", driver)
	}
}

// FileOverrideKey returns the store key for a pseudo file at path
func FileOverrideKey(path string) string {
	return fileOverridePx + path
}

// MemStore is an in-memory StateStore
type MemStore struct {
	mu      sync.Mutex
	history []string
	kv      map[string]string
	// FailWrites makes every write fail, for exercising persistence errors.
	FailWrites bool
}

// NewMemStore creates an empty MemStore
func NewMemStore() *MemStore {
	return &MemStore{kv: make(map[string]string)}
}

var errMemWrite = fmt.Errorf("memory store: writes disabled")

func (m *MemStore) AppendHistory(line string, limit int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errMemWrite
	}
	m.history = append(m.history, line)
	if limit > 0 && len(m.history) > limit {
		m.history = append([]string(nil), m.history[len(m.history)-limit:]...)
	}
	return nil
}

func (m *MemStore) History() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.history...), nil
}

func (m *MemStore) ClearHistory() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errMemWrite
	}
	m.history = nil
	return nil
}

func (m *MemStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.kv[key]
	return v, ok, nil
}

func (m *MemStore) Put(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errMemWrite
	}
	m.kv[key] = value
	return nil
}

func (m *MemStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errMemWrite
	}
	delete(m.kv, key)
	return nil
}

func (m *MemStore) Keys(prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.kv {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemStore) Close() error { return nil }

// SetFailWrites toggles write failures
func (m *MemStore) SetFailWrites(fail bool) {
	m.mu.Lock()
	m.FailWrites = fail
	m.mu.Unlock()
}
