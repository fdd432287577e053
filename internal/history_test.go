package internal

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newHistoryWith(t *testing.T, lines ...string) *History {
	t.Helper()
	h := NewHistory(NewMemStore(), 0)
	for _, l := range lines {
		if err := h.Append(l); err != nil {
			t.Fatalf("Append(%q) error = %v", l, err)
		}
	}
	return h
}

func TestHistory_AppendDedupesConsecutive(t *testing.T) {
	h := newHistoryWith(t, "ls", "ls", "cd posts", "ls")
	want := []string{"ls", "cd posts", "ls"}
	if diff := cmp.Diff(want, h.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}
}

func TestHistory_Bounded(t *testing.T) {
	h := NewHistory(NewMemStore(), 0)
	for i := 0; i < 25; i++ {
		_ = h.Append(fmt.Sprintf("cmd %d", i))
	}
	entries := h.Entries()
	if len(entries) != DefaultHistoryLimit {
		t.Fatalf("len(Entries()) = %d, want %d", len(entries), DefaultHistoryLimit)
	}
	if entries[0] != "cmd 5" || entries[19] != "cmd 24" {
		t.Errorf("kept the wrong window: %q .. %q", entries[0], entries[19])
	}
}

func TestHistory_Navigate(t *testing.T) {
	h := newHistoryWith(t, "a", "b", "c")

	steps := []struct {
		dir  Direction
		want string
	}{
		{Older, "c"},
		{Older, "b"},
		{Older, "a"},
		{Older, "a"},
		{Newer, "b"},
		{Newer, "c"},
		{Newer, "draft"},
		{Newer, "draft"},
	}
	for i, step := range steps {
		got, ok := h.Navigate(step.dir, "draft")
		if !ok {
			t.Fatalf("step %d: Navigate() ok = false", i)
		}
		if got != step.want {
			t.Errorf("step %d: Navigate() = %q, want %q", i, got, step.want)
		}
	}
}

func TestHistory_NavigateKeepsFirstDraft(t *testing.T) {
	h := newHistoryWith(t, "a")
	h.Navigate(Older, "typed")
	got, _ := h.Navigate(Newer, "a")
	if got != "typed" {
		t.Errorf("Navigate(Newer) = %q, want the draft from the first move", got)
	}
}

func TestHistory_UpThenDownRestoresInput(t *testing.T) {
	for k := 1; k <= 5; k++ {
		h := newHistoryWith(t, "one", "two", "three")
		for i := 0; i < k; i++ {
			h.Navigate(Older, "partial")
		}
		var got string
		for i := 0; i < k; i++ {
			got, _ = h.Navigate(Newer, "ignored")
		}
		if k <= 3 && got != "partial" {
			t.Errorf("k=%d: got %q, want partial", k, got)
		}
	}
}

func TestHistory_NavigateEmpty(t *testing.T) {
	h := NewHistory(NewMemStore(), 0)
	got, ok := h.Navigate(Older, "x")
	if ok || got != "x" {
		t.Errorf("Navigate() on empty history = %q, %v", got, ok)
	}
	if h.Browsing() {
		t.Error("Browsing() = true after no-op navigation")
	}
}

func TestHistory_ResetAfterSubmit(t *testing.T) {
	h := newHistoryWith(t, "a", "b")
	h.Navigate(Older, "")
	h.Reset()
	if got, _ := h.Navigate(Older, "new"); got != "b" {
		t.Errorf("Navigate() after Reset = %q, want b", got)
	}
}

func TestHistory_LoadAndClear(t *testing.T) {
	store := NewMemStore()
	_ = store.AppendHistory("x", 20)
	_ = store.AppendHistory("y", 20)

	h := NewHistory(store, 0)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff([]string{"x", "y"}, h.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}

	if err := h.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if lines, _ := store.History(); len(lines) != 0 {
		t.Errorf("store history after Clear() = %v", lines)
	}
}

func TestHistory_PersistFailureKeepsMemory(t *testing.T) {
	store := NewMemStore()
	store.SetFailWrites(true)
	h := NewHistory(store, 0)

	err := h.Append("ls")
	if !errors.Is(err, ErrPersistence) {
		t.Errorf("Append() error = %v, want ErrPersistence", err)
	}
	if len(h.Entries()) != 1 {
		t.Error("in-memory entry lost on persistence failure")
	}
}
