package tui

import (
	"strings"
	"testing"

	"github.com/iksnae/termblog/internal"
)

func TestRenderer_Event(t *testing.T) {
	r := NewRenderer(60, "notty")

	tests := []struct {
		name string
		ev   internal.OutputEvent
		want string
	}{
		{"text", internal.OutputEvent{Kind: internal.OutputText, Text: "plain"}, "plain"},
		{"error", internal.OutputEvent{Kind: internal.OutputError, Text: "boom"}, "boom"},
		{"help", internal.OutputEvent{Kind: internal.OutputHelp, Text: "usage"}, "usage"},
		{
			name: "dir",
			ev: internal.OutputEvent{Kind: internal.OutputDir, Entries: []internal.DirEntry{
				{Name: "posts", Icon: "📁", IsDir: true},
				{Name: "a.md", Icon: "📄", Date: "2024-01-01"},
			}},
			want: "posts/",
		},
		{
			name: "markdown",
			ev: internal.OutputEvent{Kind: internal.OutputMarkdown, Document: &internal.Document{
				Title: "Hello", Date: "2024-01-01", Body: "Some **bold** text",
			}},
			want: "bold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Event(tt.ev)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Event() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestRenderer_EmptyListing(t *testing.T) {
	r := NewRenderer(60, "notty")
	got := r.Event(internal.OutputEvent{Kind: internal.OutputDir})
	if !strings.Contains(got, "(empty)") {
		t.Errorf("Event() = %q, want (empty)", got)
	}
}

func TestRenderer_Conversation(t *testing.T) {
	r := NewRenderer(60, "notty")
	conv := internal.Conversation{
		Command: "pwd",
		Dir:     "/posts",
		Outputs: []internal.OutputEvent{{Kind: internal.OutputText, Text: "/posts"}},
	}
	got := r.Conversation(conv, "Guest")
	for _, want := range []string{"Guest@termblog", "/posts", "pwd"} {
		if !strings.Contains(got, want) {
			t.Errorf("Conversation() missing %q in %q", want, got)
		}
	}
	if strings.Count(got, "\n") != 1 {
		t.Errorf("Conversation() = %q, want prompt line plus one output line", got)
	}
}

func TestRenderer_Candidates(t *testing.T) {
	r := NewRenderer(60, "notty")
	if got := r.Candidates([]string{"only"}, 0); got != "" {
		t.Errorf("Candidates() with one entry = %q, want empty", got)
	}
	got := r.Candidates([]string{"cat", "cd", "clear"}, 1)
	for _, want := range []string{"cat", "cd", "clear"} {
		if !strings.Contains(got, want) {
			t.Errorf("Candidates() missing %q in %q", want, got)
		}
	}
}

func TestRenderer_Configure(t *testing.T) {
	r := NewRenderer(0, "unknown-theme")
	if r.width != 80 {
		t.Errorf("width = %d, want default 80", r.width)
	}
	md := r.md
	r.Configure(80, "unknown-theme")
	if r.md != md {
		t.Error("Configure() rebuilt the renderer without a change")
	}
	r.Configure(100, "dark")
	if r.width != 100 || r.theme != "dark" {
		t.Errorf("Configure() = %d %q, want 100 dark", r.width, r.theme)
	}
}

func TestRenderer_Welcome(t *testing.T) {
	r := NewRenderer(60, "notty")
	got := r.Welcome(internal.SettingsView{WelcomeMsg: "hi there"})
	if !strings.Contains(got, "termblog") || !strings.Contains(got, "hi there") {
		t.Errorf("Welcome() = %q", got)
	}
}
