package internal

import (
	"context"
	"fmt"
	"strings"
)

// ExecContext is what a handler sees of the session during one invocation
type ExecContext struct {
	s    *Session
	run  *invocation
	name string
	args []string
	ctx  context.Context
}

// Context is cancelled when the session closes
func (c *ExecContext) Context() context.Context { return c.ctx }

// Command returns the name the handler was registered under
func (c *ExecContext) Command() string { return c.name }

// Args returns the arguments after the command name
func (c *ExecContext) Args() []string { return c.args }

// Arg returns argument i or def when absent
func (c *ExecContext) Arg(i int, def string) string {
	if i < 0 || i >= len(c.args) {
		return def
	}
	return c.args[i]
}

// HasFlag reports whether flag appears among the arguments
func (c *ExecContext) HasFlag(flag string) bool {
	for _, a := range c.args {
		if a == flag {
			return true
		}
	}
	return false
}

// Cwd returns the current directory
func (c *ExecContext) Cwd() string { return c.s.Cwd() }

// Resolve turns p into an absolute path against the current directory
func (c *ExecContext) Resolve(p string) string { return ResolvePath(c.Cwd(), p) }

// Lookup resolves p and looks it up
func (c *ExecContext) Lookup(p string) (*Node, error) { return c.s.fsys.Lookup(c.Resolve(p)) }

// List resolves p and lists it
func (c *ExecContext) List(p string) ([]*Node, error) { return c.s.fsys.ListChildren(c.Resolve(p)) }

// IsDir reports whether p names a directory
func (c *ExecContext) IsDir(p string) bool { return c.s.fsys.IsDir(c.Resolve(p)) }

// Exists reports whether p names anything
func (c *ExecContext) Exists(p string) bool { return c.s.fsys.Exists(c.Resolve(p)) }

// FindFile finds a file by name from the current directory
func (c *ExecContext) FindFile(name string) (*Node, string, bool) {
	return c.s.fsys.FindFile(c.Cwd(), name)
}

// FileSystem returns the document tree
func (c *ExecContext) FileSystem() *FileSystem { return c.s.fsys }

// Registry returns the command registry
func (c *ExecContext) Registry() *Registry { return c.s.reg }

// SetCwd changes directory to p, which must resolve to a directory
func (c *ExecContext) SetCwd(p string) error {
	target := c.Resolve(p)
	if !c.s.fsys.IsDir(target) {
		return &NotFoundError{What: "Directory", Name: p}
	}
	c.s.setCwd(canonical(target))
	return nil
}

// canonical strips the trailing slash and empty segments an absolute
// argument may carry
func canonical(p string) string {
	return "/" + strings.Join(splitPath(p), "/")
}

// Settings returns the typed settings
func (c *ExecContext) Settings() SettingsView { return c.s.settings.View() }

// Setting reads a dotted settings path
func (c *ExecContext) Setting(path string) (interface{}, bool) { return c.s.settings.Read(path) }

// ReloadSettings re-reads the settings from the store
func (c *ExecContext) ReloadSettings() error { return c.s.settings.Reload(c.ctx) }

// UpdateSettings merges partial into the settings, reporting success
func (c *ExecContext) UpdateSettings(partial map[string]interface{}) bool {
	return c.s.settings.Update(partial)
}

// ResetSettings drops stored settings and pseudo files
func (c *ExecContext) ResetSettings() error {
	if err := c.s.files.ClearOverrides(); err != nil {
		return err
	}
	return c.s.settings.Reset(c.ctx)
}

// Emit appends a raw event
func (c *ExecContext) Emit(ev OutputEvent) int { return c.s.log.Append(c.run.convID, ev) }

// Print appends plain text
func (c *ExecContext) Print(text string) { c.Emit(OutputEvent{Kind: OutputText, Text: text}) }

// Printf appends formatted plain text
func (c *ExecContext) Printf(format string, args ...interface{}) { c.Print(fmt.Sprintf(format, args...)) }

// Error appends an error line
func (c *ExecContext) Error(text string) { c.Emit(OutputEvent{Kind: OutputError, Text: text}) }

// Info appends an informational line
func (c *ExecContext) Info(text string) { c.Emit(OutputEvent{Kind: OutputInfo, Text: text}) }

// Success appends a success line
func (c *ExecContext) Success(text string) { c.Emit(OutputEvent{Kind: OutputSuccess, Text: text}) }

// Help appends help text
func (c *ExecContext) Help(text string) { c.Emit(OutputEvent{Kind: OutputHelp, Text: text}) }

// Tree appends a pre-drawn tree
func (c *ExecContext) Tree(text string) { c.Emit(OutputEvent{Kind: OutputTree, Text: text}) }

// Dir appends a directory listing
func (c *ExecContext) Dir(entries []DirEntry) { c.Emit(OutputEvent{Kind: OutputDir, Entries: entries}) }

// Markdown appends a document for the renderer
func (c *ExecContext) Markdown(doc Document) { c.Emit(OutputEvent{Kind: OutputMarkdown, Document: &doc}) }

// Progress shows a progress bar, updating the previous one in place
func (c *ExecContext) Progress(percent int, label string) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	c.s.log.ReplaceLastOfKind(c.run.convID, OutputEvent{
		Kind:    OutputProgress,
		Text:    FormatProgress(percent, label),
		Percent: percent,
	})
}

// Loading shows label while fn runs, then marks it done or failed
func (c *ExecContext) Loading(label string, fn func() error) error {
	idx := c.Emit(OutputEvent{Kind: OutputInfo, Text: label + " ..."})
	err := fn()
	ev := OutputEvent{Kind: OutputSuccess, Text: label + " done"}
	if err != nil {
		ev = OutputEvent{Kind: OutputError, Text: label + " failed"}
	}
	c.s.log.Replace(c.run.convID, idx, ev)
	return err
}

// Redraw asks the front end to repaint and scroll to the bottom
func (c *ExecContext) Redraw() { c.s.requestRedraw() }

// ClearScreen drops every conversation, this one included
func (c *ExecContext) ClearScreen() { c.s.log.Clear() }

// ClearOthers drops every conversation except the running one
func (c *ExecContext) ClearOthers() { c.s.log.ClearExcept(c.run.convID) }

// ReadLine suspends the handler until the next submitted line
func (c *ExecContext) ReadLine() (string, error) {
	return c.Prompt("")
}

// Prompt shows msg in place of the shell prompt and waits for a line. The
// session is suspended until the line arrives or the session closes.
func (c *ExecContext) Prompt(msg string) (string, error) {
	if err := c.ctx.Err(); err != nil {
		return "", err
	}
	if msg != "" {
		c.Info(msg)
	}
	select {
	case c.run.signals <- runSignal{suspended: true, prompt: msg}:
	case <-c.ctx.Done():
		return "", c.ctx.Err()
	}
	select {
	case line := <-c.run.lines:
		return line, nil
	case <-c.ctx.Done():
		return "", c.ctx.Err()
	}
}

// ReadFile reads a file by shell name
func (c *ExecContext) ReadFile(name string) (string, error) {
	return c.s.files.ReadFile(c.ctx, c.Cwd(), name)
}

// WriteFile writes a file by shell name, reporting success
func (c *ExecContext) WriteFile(name, content string) bool {
	return c.s.files.WriteFile(c.Cwd(), name, content)
}

// Writable reports whether name may be saved
func (c *ExecContext) Writable(name string) bool {
	return c.s.files.Writable(c.Cwd(), name)
}

// History returns the history entries oldest first
func (c *ExecContext) History() []string { return c.s.history.Entries() }

// ClearHistory wipes the history
func (c *ExecContext) ClearHistory() error { return c.s.history.Clear() }

// DownloadDir returns where downloads are written; empty disables them
func (c *ExecContext) DownloadDir() string { return c.s.download }
