package internal

import "sync"

// DefaultHistoryLimit is how many lines are kept
const DefaultHistoryLimit = 20

// Direction is a history navigation direction
type Direction int

const (
	Older Direction = iota
	Newer
)

// History is the bounded log of submitted lines with a navigation cursor.
// cursor -1 means "not browsing"; draft holds what was typed before the
// first move.
type History struct {
	mu      sync.Mutex
	store   StateStore
	limit   int
	entries []string
	cursor  int
	draft   string
}

// NewHistory creates a history backed by store. A limit <= 0 uses
// DefaultHistoryLimit.
func NewHistory(store StateStore, limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{store: store, limit: limit, cursor: -1}
}

// Load replaces the in-memory entries with the persisted ones
func (h *History) Load() error {
	lines, err := h.store.History()
	if err != nil {
		return &PersistenceError{Op: "history", Err: err}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(lines) > h.limit {
		lines = lines[len(lines)-h.limit:]
	}
	h.entries = lines
	h.cursor, h.draft = -1, ""
	return nil
}

// Append records a submitted line unless it repeats the newest entry. The
// in-memory log is updated even when persisting fails.
func (h *History) Append(line string) error {
	h.mu.Lock()
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		h.mu.Unlock()
		return nil
	}
	h.entries = append(h.entries, line)
	if len(h.entries) > h.limit {
		h.entries = append([]string(nil), h.entries[len(h.entries)-h.limit:]...)
	}
	h.mu.Unlock()

	if err := h.store.AppendHistory(line, h.limit); err != nil {
		return &PersistenceError{Op: "history", Err: err}
	}
	return nil
}

// Navigate moves the cursor and returns the line to display. With no
// entries it is a no-op and reports false.
func (h *History) Navigate(dir Direction, current string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.entries)
	if n == 0 {
		return current, false
	}
	if h.cursor == -1 {
		h.draft = current
	}
	switch dir {
	case Older:
		if h.cursor < n-1 {
			h.cursor++
		}
	case Newer:
		if h.cursor > -1 {
			h.cursor--
		}
	}
	if h.cursor == -1 {
		return h.draft, true
	}
	return h.entries[n-1-h.cursor], true
}

// Reset ends browsing
func (h *History) Reset() {
	h.mu.Lock()
	h.cursor, h.draft = -1, ""
	h.mu.Unlock()
}

// Browsing reports whether the cursor is on an entry
func (h *History) Browsing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor != -1
}

// Entries returns the lines oldest first
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

// Clear drops every entry here and in the store
func (h *History) Clear() error {
	h.mu.Lock()
	h.entries = nil
	h.cursor, h.draft = -1, ""
	h.mu.Unlock()
	if err := h.store.ClearHistory(); err != nil {
		return &PersistenceError{Op: "history", Err: err}
	}
	return nil
}
