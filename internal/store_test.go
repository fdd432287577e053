package internal

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openTestStores(t *testing.T) map[string]StateStore {
	t.Helper()
	dir := t.TempDir()

	sqlite, err := OpenSQLiteStore(filepath.Join(dir, "state.db"))
	if err != nil {
		t.Fatalf("OpenSQLiteStore() error = %v", err)
	}
	bolt, err := OpenBoltStore(filepath.Join(dir, "state.bolt"))
	if err != nil {
		t.Fatalf("OpenBoltStore() error = %v", err)
	}
	stores := map[string]StateStore{
		"memory": NewMemStore(),
		"sqlite": sqlite,
		"bolt":   bolt,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStateStore_History(t *testing.T) {
	for name, store := range openTestStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, line := range []string{"a", "b", "c", "d"} {
				if err := store.AppendHistory(line, 3); err != nil {
					t.Fatalf("AppendHistory(%q) error = %v", line, err)
				}
			}
			got, err := store.History()
			if err != nil {
				t.Fatalf("History() error = %v", err)
			}
			if diff := cmp.Diff([]string{"b", "c", "d"}, got); diff != "" {
				t.Errorf("History() mismatch (-want +got):\n%s", diff)
			}

			if err := store.ClearHistory(); err != nil {
				t.Fatalf("ClearHistory() error = %v", err)
			}
			got, _ = store.History()
			if len(got) != 0 {
				t.Errorf("History() after clear = %v", got)
			}

			_ = store.AppendHistory("e", 3)
			got, _ = store.History()
			if diff := cmp.Diff([]string{"e"}, got); diff != "" {
				t.Errorf("History() after clear and append mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStateStore_KV(t *testing.T) {
	for name, store := range openTestStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := store.Get("missing"); ok || err != nil {
				t.Errorf("Get(missing) = %v, %v", ok, err)
			}

			_ = store.Put(SettingsKey, "[app]\nuser = \"x\"\n")
			_ = store.Put(FileOverrideKey("/notes/a.txt"), "A")
			_ = store.Put(FileOverrideKey("/b.txt"), "B")
			_ = store.Put(FileOverrideKey("/b.txt"), "B2")

			v, ok, err := store.Get(FileOverrideKey("/b.txt"))
			if err != nil || !ok || v != "B2" {
				t.Errorf("Get() = %q, %v, %v; want B2", v, ok, err)
			}

			keys, err := store.Keys(fileOverridePx)
			if err != nil {
				t.Fatalf("Keys() error = %v", err)
			}
			want := []string{"vfs:/b.txt", "vfs:/notes/a.txt"}
			if diff := cmp.Diff(want, keys); diff != "" {
				t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
			}

			if err := store.Delete(FileOverrideKey("/b.txt")); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, ok, _ := store.Get(FileOverrideKey("/b.txt")); ok {
				t.Error("Get() found a deleted key")
			}
		})
	}
}

func TestOpenStateStore(t *testing.T) {
	paths := DataPaths{BasePath: t.TempDir()}

	for _, driver := range []string{DriverSQLite, DriverBolt, DriverMemory, ""} {
		store, err := OpenStateStore(driver, paths)
		if err != nil {
			t.Errorf("OpenStateStore(%q) error = %v", driver, err)
			continue
		}
		_ = store.Close()
	}

	if _, err := OpenStateStore("postgres", paths); err == nil {
		t.Error("OpenStateStore(postgres) should fail")
	}
}

func TestMemStore_FailWrites(t *testing.T) {
	store := NewMemStore()
	store.SetFailWrites(true)
	if err := store.Put("k", "v"); err == nil {
		t.Error("Put() should fail when writes are disabled")
	}
	if err := store.AppendHistory("x", 5); err == nil {
		t.Error("AppendHistory() should fail when writes are disabled")
	}
}
