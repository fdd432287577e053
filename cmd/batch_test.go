package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/termblog/internal"
	"github.com/iksnae/termblog/internal/commands"
)

func TestBatchRunner_Submit(t *testing.T) {
	s := internal.CreateTestShell(t, commands.NewRegistry())
	var out bytes.Buffer
	b := newBatchRunner(s, &out)

	if err := b.Submit("cd posts"); err != nil {
		t.Fatal(err)
	}
	if err := b.Submit("pwd"); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	for _, want := range []string{"Guest@termblog:/$ cd posts", "Guest@termblog:/posts$ pwd", "/posts\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestBatchRunner_ResumesSuspendedHandler(t *testing.T) {
	s := internal.CreateTestShell(t, commands.NewRegistry())
	var out bytes.Buffer
	b := newBatchRunner(s, &out)

	if err := b.Run(strings.NewReader("clear-config\nn\n")); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if strings.Count(got, "clear-config") != 1 {
		t.Errorf("command line printed more than once:\n%s", got)
	}
	for _, want := range []string{"Clear all settings and history? (y/N)", "Cancelled."} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if s.Log().Len() != 1 {
		t.Errorf("conversations = %d, want 1", s.Log().Len())
	}
}

func TestBatchRunner_ClearScreen(t *testing.T) {
	s := internal.CreateTestShell(t, commands.NewRegistry())
	var out bytes.Buffer
	b := newBatchRunner(s, &out)

	if err := b.Run(strings.NewReader("pwd\nclear\npwd\n")); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(out.String(), "$ pwd"); got != 2 {
		t.Errorf("pwd printed %d times, want 2:\n%s", got, out.String())
	}
}
