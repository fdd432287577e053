package commands

import (
	"strings"
	"testing"

	"github.com/iksnae/termblog/internal"
)

// submitAll feeds lines to a suspended editor and returns the final state
func submitAll(t *testing.T, ts *testShell, lines ...string) internal.SessionState {
	t.Helper()
	var state internal.SessionState
	for _, line := range lines {
		var err error
		state, err = ts.Submit(line)
		if err != nil {
			t.Fatalf("Submit(%q) error = %v", line, err)
		}
	}
	return state
}

func TestVi_NewPseudoFile(t *testing.T) {
	ts := newTestShell(t)
	ts.run(t, "cd notes")

	if state := submitAll(t, ts, "vi todo.txt"); state != internal.StateSuspended {
		t.Fatalf("vi state = %v, want suspended", state)
	}
	if state := submitAll(t, ts, "buy milk", "call home", ":d 2", ":wq"); state != internal.StateReady {
		t.Fatalf("state after :wq = %v", state)
	}
	if ts.Log().Len() != 2 {
		t.Errorf("editor input must stay in one conversation, Len() = %d", ts.Log().Len())
	}

	if out := output(ts.run(t, "echo todo.txt")); out != "buy milk" {
		t.Errorf("saved file = %q", out)
	}
	if v, ok, _ := ts.store.Get(internal.FileOverrideKey("/notes/todo.txt")); !ok || v != "buy milk" {
		t.Errorf("stored override = %q, %v", v, ok)
	}
}

func TestVi_ReadOnlyArticle(t *testing.T) {
	ts := newTestShell(t)
	submitAll(t, ts, "vi about.md")
	state := submitAll(t, ts, ":w")
	if state != internal.StateSuspended {
		t.Fatalf("state after refused :w = %v", state)
	}
	conv, _ := ts.Log().Last()
	if !strings.Contains(output(conv), "[readonly]") || !strings.Contains(output(conv), "E45") {
		t.Errorf("output = %q", output(conv))
	}
	if state := submitAll(t, ts, ":q"); state != internal.StateReady {
		t.Errorf("state after :q = %v", state)
	}
}

func TestVi_QuitWithChanges(t *testing.T) {
	ts := newTestShell(t)
	submitAll(t, ts, "vi scratch", "line")
	if state := submitAll(t, ts, ":q"); state != internal.StateSuspended {
		t.Fatalf(":q with changes should refuse, state = %v", state)
	}
	if state := submitAll(t, ts, ":q!"); state != internal.StateReady {
		t.Fatalf(":q! state = %v", state)
	}
	if _, ok, _ := ts.store.Get(internal.FileOverrideKey("/scratch")); ok {
		t.Error(":q! must not save")
	}
}

func TestVi_EditConfig(t *testing.T) {
	ts := newTestShell(t)
	submitAll(t, ts, "vi config.toml", "extra = 1", ":wq")

	if v, ok := ts.Settings().Read("read_theme.extra"); !ok || v != int64(1) {
		t.Errorf("read_theme.extra = %v, %v", v, ok)
	}

	// a document that does not parse is refused and the editor stays open
	state := submitAll(t, ts, "vi config.toml", "[[broken", ":w")
	if state != internal.StateSuspended {
		t.Fatalf("state = %v", state)
	}
	conv, _ := ts.Log().Last()
	if !strings.Contains(output(conv), "Failed to write config.toml, please retry.") {
		t.Errorf("output = %q", output(conv))
	}
	submitAll(t, ts, ":q!")
}

func TestVi_Usage(t *testing.T) {
	ts := newTestShell(t)
	if out := output(ts.run(t, "vi")); out != "Usage: vi <file>" {
		t.Errorf("vi = %q", out)
	}
	if out := output(ts.run(t, "vi posts")); out != "File not found: posts" {
		t.Errorf("vi posts = %q", out)
	}
}

func TestVi_ArticleFoundByNameIsReadOnly(t *testing.T) {
	ts := newTestShell(t)
	submitAll(t, ts, "vi hello-world.md")
	state := submitAll(t, ts, "HACKED", ":wq")
	if state != internal.StateSuspended {
		t.Fatalf("state after refused :wq = %v", state)
	}
	conv, _ := ts.Log().Last()
	if !strings.Contains(output(conv), "[readonly]") || !strings.Contains(output(conv), "E45") {
		t.Errorf("output = %q", output(conv))
	}
	submitAll(t, ts, ":q!")

	for _, p := range []string{"/hello-world.md", "/posts/hello-world.md"} {
		if _, ok, _ := ts.store.Get(internal.FileOverrideKey(p)); ok {
			t.Errorf("override stored at %s", p)
		}
	}
	if out := output(ts.run(t, "cat hello-world.md")); strings.Contains(out, "HACKED") {
		t.Errorf("article body changed: %q", out)
	}
}
