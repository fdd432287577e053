package internal

import (
	"strings"
	"time"
)

// OutputKind classifies an output event for rendering
type OutputKind string

const (
	OutputText     OutputKind = "text"
	OutputError    OutputKind = "error"
	OutputSuccess  OutputKind = "success"
	OutputInfo     OutputKind = "info"
	OutputDir      OutputKind = "dir"
	OutputTree     OutputKind = "tree"
	OutputMarkdown OutputKind = "markdown"
	OutputProgress OutputKind = "progress"
	OutputHelp     OutputKind = "help"
)

// OutputEvent is one piece of output attached to a conversation
type OutputEvent struct {
	Kind     OutputKind `json:"kind" yaml:"kind"`
	Text     string     `json:"text,omitempty" yaml:"text,omitempty"`
	Entries  []DirEntry `json:"entries,omitempty" yaml:"entries,omitempty"`
	Document *Document  `json:"document,omitempty" yaml:"document,omitempty"`
	Percent  int        `json:"percent,omitempty" yaml:"percent,omitempty"`
}

// DirEntry is one line of a directory listing
type DirEntry struct {
	Name  string `json:"name" yaml:"name"`
	Icon  string `json:"icon,omitempty" yaml:"icon,omitempty"`
	IsDir bool   `json:"is_dir" yaml:"is_dir"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Date  string `json:"date,omitempty" yaml:"date,omitempty"`
}

// Document is a markdown article handed to the renderer as is
type Document struct {
	Title    string `json:"title" yaml:"title"`
	Date     string `json:"date,omitempty" yaml:"date,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Body     string `json:"body" yaml:"body"`
}

// Conversation is one submitted command line and everything it printed
type Conversation struct {
	ID       string        `json:"id" yaml:"id"`
	Command  string        `json:"command" yaml:"command"`
	Dir      string        `json:"dir" yaml:"dir"`
	IssuedAt time.Time     `json:"issued_at" yaml:"issued_at"`
	Outputs  []OutputEvent `json:"outputs" yaml:"outputs"`
}

// PlainText flattens an event to text, used by exporters and batch output
// without styling.
func (e OutputEvent) PlainText() string {
	switch e.Kind {
	case OutputDir:
		names := make([]string, 0, len(e.Entries))
		for _, entry := range e.Entries {
			name := entry.Name
			if entry.IsDir {
				name += "/"
			}
			names = append(names, name)
		}
		return strings.Join(names, "  ")
	case OutputMarkdown:
		if e.Document == nil {
			return ""
		}
		var b strings.Builder
		b.WriteString("# " + e.Document.Title + "\n")
		if e.Document.Date != "" || e.Document.Category != "" {
			b.WriteString(strings.TrimSpace(e.Document.Date+" "+e.Document.Category) + "\n")
		}
		b.WriteString("\n" + e.Document.Body)
		return b.String()
	default:
		return e.Text
	}
}
