package internal

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iksnae/termblog/testutil"
)

func TestOpenDatabaseReadOnly(t *testing.T) {
	dbPath := filepath.Join(testutil.CreateTempDir(t), "state.db")
	testutil.CreateStateDBFixture(t, dbPath, []string{"ls", "pwd"}, map[string]string{
		SettingsKey:                    "[app]\nuser = \"x\"\n",
		FileOverrideKey("/notes/a.md"): "draft",
	})

	db, err := OpenDatabaseReadOnly(dbPath)
	if err != nil {
		t.Fatalf("OpenDatabaseReadOnly() error = %v", err)
	}
	defer db.Close()

	pairs, err := QueryKV(db, fileOverridePx+"%")
	if err != nil {
		t.Fatalf("QueryKV() error = %v", err)
	}
	want := []KeyValuePair{{Key: FileOverrideKey("/notes/a.md"), Value: "draft"}}
	if diff := cmp.Diff(want, pairs); diff != "" {
		t.Errorf("QueryKV() mismatch (-want +got):\n%s", diff)
	}

	if _, err := db.Exec("DELETE FROM kv"); err == nil {
		t.Error("read-only database accepted a write")
	}
}

func TestSQLiteStore_OverInMemoryDB(t *testing.T) {
	store := NewSQLiteStore(testutil.CreateInMemoryDB(t))
	for _, line := range []string{"a", "b", "c"} {
		if err := store.AppendHistory(line, 2); err != nil {
			t.Fatal(err)
		}
	}
	got, err := store.History()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"b", "c"}, got); diff != "" {
		t.Errorf("History() mismatch (-want +got):\n%s", diff)
	}
}
