package commands

import (
	"strings"
	"testing"

	"github.com/iksnae/termblog/internal"
)

type testShell struct {
	*internal.Session
	store    *internal.MemStore
	download string
}

func newTestShell(t *testing.T) *testShell {
	t.Helper()
	store := internal.NewMemStore()
	download := t.TempDir()
	s, err := internal.NewSession(internal.SessionConfig{
		FileSystem:  internal.CreateTestFileSystem(t),
		Registry:    NewRegistry(),
		Settings:    internal.CreateTestSettings(t, store),
		Store:       store,
		Content:     internal.NewFSContent(internal.DefaultContent()),
		DownloadDir: download,
	})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return &testShell{Session: s, store: store, download: download}
}

// run submits line and returns the conversation it produced
func (ts *testShell) run(t *testing.T, line string) internal.Conversation {
	t.Helper()
	if _, err := ts.Submit(line); err != nil {
		t.Fatalf("Submit(%q) error = %v", line, err)
	}
	conv, _ := ts.Log().Last()
	return conv
}

// output joins the plain text of every event of conv
func output(conv internal.Conversation) string {
	var lines []string
	for _, ev := range conv.Outputs {
		lines = append(lines, ev.PlainText())
	}
	return strings.Join(lines, "\n")
}

func lastKind(conv internal.Conversation) internal.OutputKind {
	if len(conv.Outputs) == 0 {
		return ""
	}
	return conv.Outputs[len(conv.Outputs)-1].Kind
}

func TestRegister(t *testing.T) {
	reg := internal.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := Register(reg); err == nil {
		t.Error("second Register() should report duplicates")
	}
	if cmd, ok := reg.Resolve("view"); !ok || cmd.Name != "cat" {
		t.Errorf("Resolve(view) = %v, %v", cmd.Name, ok)
	}
	for _, cmd := range reg.Commands() {
		if cmd.Usage == "" || cmd.Summary == "" {
			t.Errorf("%s has no usage or summary", cmd.Name)
		}
	}
}

func TestHelp(t *testing.T) {
	tests := []struct {
		line     string
		contains []string
		absent   []string
	}{
		{"help", []string{"ls [dir]", "cd <dir>", "help -l"}, []string{"clear-config"}},
		{"help -l", []string{"clear-config", "test-config", "history [-c]"}, nil},
		{"help cd", []string{"Usage: cd <dir>", "Change directory"}, nil},
		{"help view", []string{"Usage: cat <file.md>", "aliases: view"}, nil},
		{"help nope", []string{"Command not found: nope"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			ts := newTestShell(t)
			out := output(ts.run(t, tt.line))
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("%q output missing %q:\n%s", tt.line, want, out)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(out, bad) {
					t.Errorf("%q output should not contain %q", tt.line, bad)
				}
			}
		})
	}
}

func TestHistoryCommand(t *testing.T) {
	ts := newTestShell(t)
	ts.run(t, "pwd")
	ts.run(t, "ls")

	out := output(ts.run(t, "history"))
	want := "   1  pwd\n   2  ls\n   3  history"
	if out != want {
		t.Errorf("history output = %q, want %q", out, want)
	}

	ts.run(t, "history -c")
	if n := len(ts.History().Entries()); n != 0 {
		t.Errorf("history -c left %d entries", n)
	}
	if stored, _ := ts.store.History(); len(stored) != 0 {
		t.Errorf("history -c left %v in the store", stored)
	}
}

func TestClearCommand(t *testing.T) {
	ts := newTestShell(t)
	ts.run(t, "pwd")
	ts.run(t, "clear")
	if ts.Log().Len() != 0 {
		t.Errorf("clear left %d conversations", ts.Log().Len())
	}
}
