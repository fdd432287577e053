package internal

import (
	"sort"
	"strings"
	"sync"
)

// QuickCommands is the list an empty line cycles through on Tab
var QuickCommands = []string{"ls", "cd", "cat"}

type completionPhase int

const (
	phaseIdle completionPhase = iota
	phaseCommand
	phaseArgument
)

// completionSession is the state kept between Tab presses. head is the
// part of the line before the token being completed; prefix is that token
// as the user typed it when the session opened.
type completionSession struct {
	phase      completionPhase
	command    string
	head       string
	prefix     string
	candidates []string
	cursor     int
}

// Completer implements Tab completion over the registry and the virtual
// filesystem
type Completer struct {
	mu       sync.Mutex
	reg      *Registry
	fsys     *FileSystem
	settings *SettingsStore
	quick    []string
	session  completionSession
}

// NewCompleter creates a Completer. settings may be nil, in which case
// vocabularies see a zero SettingsView.
func NewCompleter(reg *Registry, fsys *FileSystem, settings *SettingsStore) *Completer {
	return &Completer{reg: reg, fsys: fsys, settings: settings, quick: QuickCommands}
}

// Complete handles one Tab press on line with cwd as the current
// directory. It returns the new line and whether anything changed.
func (c *Completer) Complete(line, cwd string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.observe(line)
	if c.session.phase != phaseIdle {
		return c.step(1), true
	}

	i := strings.IndexByte(line, ' ')
	if i < 0 {
		return c.completeCommand(line)
	}
	return c.completeArgument(line[:i], line[i+1:], cwd)
}

// Navigate moves through the open argument candidates: Older (Up) goes
// back, Newer (Down) goes forward. It reports false when no argument
// session is open so the caller can fall back to history.
func (c *Completer) Navigate(dir Direction) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.phase != phaseArgument {
		return "", false
	}
	if dir == Older {
		return c.step(-1), true
	}
	return c.step(1), true
}

// Observe must see every edit of the input line. It discards the session
// once the line no longer continues what the session started from.
func (c *Completer) Observe(line string) {
	c.mu.Lock()
	c.observe(line)
	c.mu.Unlock()
}

// Cycling reports whether an argument session is open
func (c *Completer) Cycling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.phase == phaseArgument
}

// Candidates returns the open session's candidates and cursor, for display
func (c *Completer) Candidates() ([]string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.phase == phaseIdle {
		return nil, -1
	}
	return append([]string(nil), c.session.candidates...), c.session.cursor
}

// Reset discards any session
func (c *Completer) Reset() {
	c.mu.Lock()
	c.session = completionSession{}
	c.mu.Unlock()
}

func (c *Completer) observe(line string) {
	s := &c.session
	switch s.phase {
	case phaseCommand:
		if strings.IndexByte(line, ' ') >= 0 || !strings.HasPrefix(line, s.prefix) {
			c.session = completionSession{}
		}
	case phaseArgument:
		cmd, arg, ok := strings.Cut(line, " ")
		if !ok || cmd != s.command || strings.IndexByte(arg, ' ') >= 0 || !strings.HasPrefix(arg, s.prefix) {
			c.session = completionSession{}
		}
	}
}

func (c *Completer) step(delta int) string {
	s := &c.session
	n := len(s.candidates)
	s.cursor = ((s.cursor+delta)%n + n) % n
	return s.head + s.candidates[s.cursor]
}

func (c *Completer) completeCommand(token string) (string, bool) {
	if len(c.quick) > 0 {
		if token == "" {
			return c.quick[0], true
		}
		for i, q := range c.quick {
			if q == token {
				return c.quick[(i+1)%len(c.quick)], true
			}
		}
	}

	matches := c.reg.Matches(token)
	switch len(matches) {
	case 0:
		return token, false
	case 1:
		return matches[0] + " ", true
	}

	cursor := 0
	for i, m := range matches {
		if m == token {
			cursor = (i + 1) % len(matches)
		}
	}
	c.session = completionSession{
		phase:      phaseCommand,
		prefix:     token,
		candidates: matches,
		cursor:     cursor,
	}
	return matches[cursor], true
}

func (c *Completer) completeArgument(name, arg, cwd string) (string, bool) {
	line := name + " " + arg
	if strings.IndexByte(arg, ' ') >= 0 {
		return line, false
	}
	cmd, ok := c.reg.Resolve(name)
	if !ok {
		return line, false
	}

	var matches []string
	for _, cand := range c.candidates(cmd.Args, arg, cwd) {
		if strings.HasPrefix(cand, arg) {
			matches = append(matches, cand)
		}
	}
	matches = sortUnique(matches)

	switch len(matches) {
	case 0:
		return line, false
	case 1:
		return name + " " + matches[0], true
	}
	c.session = completionSession{
		phase:      phaseArgument,
		command:    name,
		head:       name + " ",
		prefix:     arg,
		candidates: matches,
	}
	return c.session.head + matches[0], true
}

// candidates lists everything the first argument of a command could be.
// An argument containing "/" completes inside the directory it names.
func (c *Completer) candidates(spec ArgSpec, arg, cwd string) []string {
	dirPrefix := ""
	target := cwd
	if i := strings.LastIndexByte(arg, '/'); i >= 0 {
		dirPrefix = arg[:i+1]
		target = ResolvePath(cwd, dirPrefix)
		if strings.HasPrefix(dirPrefix, "/") {
			target = ResolvePath("/", strings.TrimPrefix(dirPrefix, "/"))
		}
	}

	var out []string
	switch spec.Kind {
	case ArgDirs, ArgFiles, ArgAny:
		for _, name := range c.fsys.Names(target, spec.Kind) {
			out = append(out, dirPrefix+name)
		}
	case ArgCommands:
		if dirPrefix == "" {
			out = append(out, c.reg.Names()...)
		}
	}
	if spec.Vocabulary != nil && dirPrefix == "" {
		var view SettingsView
		if c.settings != nil {
			view = c.settings.View()
		}
		out = append(out, spec.Vocabulary(view)...)
	}
	return out
}

func sortUnique(in []string) []string {
	if len(in) == 0 {
		return in
	}
	sort.Strings(in)
	out := in[:1]
	for _, s := range in[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}
