package internal

import (
	"fmt"
	"sort"
	"strings"
)

// Handler executes one command invocation. Returning an error reports it on
// the conversation; the session carries on either way.
type Handler interface {
	Execute(ctx *ExecContext, args []string) error
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(ctx *ExecContext, args []string) error

// Execute calls f(ctx, args)
func (f HandlerFunc) Execute(ctx *ExecContext, args []string) error {
	return f(ctx, args)
}

// ArgKind is the kind of filesystem item a command's argument names
type ArgKind int

const (
	ArgNone     ArgKind = iota // no filesystem completion
	ArgDirs                    // directories only
	ArgFiles                   // files only
	ArgAny                     // directories and files
	ArgCommands                // registered command names
)

func (k ArgKind) String() string {
	switch k {
	case ArgDirs:
		return "dirs"
	case ArgFiles:
		return "files"
	case ArgAny:
		return "any"
	case ArgCommands:
		return "commands"
	default:
		return "none"
	}
}

// Accepts reports whether n is offered for this kind
func (k ArgKind) Accepts(n *Node) bool {
	switch k {
	case ArgDirs:
		return n.IsDir()
	case ArgFiles:
		return !n.IsDir()
	case ArgAny:
		return true
	default:
		return false
	}
}

// VocabularyFunc returns literal words a command accepts as its first
// argument. It sees the current settings so lists like available themes
// stay in sync with config.toml.
type VocabularyFunc func(v SettingsView) []string

// Words returns a VocabularyFunc for a fixed list
func Words(words ...string) VocabularyFunc {
	return func(SettingsView) []string { return words }
}

// ArgSpec describes what the first argument of a command completes to
type ArgSpec struct {
	Kind       ArgKind
	Vocabulary VocabularyFunc
}

// Command is one registry entry
type Command struct {
	Name    string
	Aliases []string
	Usage   string
	Summary string
	Args    ArgSpec
	Handler Handler
}

// Registry maps command names and aliases to commands. Lookup is exact and
// case sensitive.
type Registry struct {
	primary map[string]Command
	lookup  map[string]string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		primary: make(map[string]Command),
		lookup:  make(map[string]string),
	}
}

// Register adds a command and its aliases
func (r *Registry) Register(cmd Command) error {
	cmd.Name = strings.TrimSpace(cmd.Name)
	if cmd.Name == "" {
		return fmt.Errorf("registry: empty command name")
	}
	if strings.ContainsAny(cmd.Name, " \t") {
		return fmt.Errorf("registry: command name %q contains whitespace", cmd.Name)
	}
	if cmd.Handler == nil {
		return fmt.Errorf("registry: %q has no handler", cmd.Name)
	}
	if _, ok := r.lookup[cmd.Name]; ok {
		return fmt.Errorf("registry: duplicate command %q", cmd.Name)
	}

	r.primary[cmd.Name] = cmd
	r.lookup[cmd.Name] = cmd.Name

	for _, alias := range cmd.Aliases {
		alias = strings.TrimSpace(alias)
		if alias == "" {
			continue
		}
		if _, ok := r.lookup[alias]; ok {
			return fmt.Errorf("registry: duplicate alias %q", alias)
		}
		r.lookup[alias] = cmd.Name
	}
	return nil
}

// MustRegister is Register for static tables; it panics on error
func (r *Registry) MustRegister(cmds ...Command) {
	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			panic(err)
		}
	}
}

// Resolve finds a command by name or alias
func (r *Registry) Resolve(name string) (Command, bool) {
	primary, ok := r.lookup[name]
	if !ok {
		return Command{}, false
	}
	cmd, ok := r.primary[primary]
	return cmd, ok
}

// Names returns all primary command names, sorted
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.primary))
	for name := range r.primary {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Matches returns sorted primary names starting with prefix
func (r *Registry) Matches(prefix string) []string {
	var out []string
	for _, name := range r.Names() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

// Commands returns every command sorted by name
func (r *Registry) Commands() []Command {
	names := r.Names()
	out := make([]Command, 0, len(names))
	for _, name := range names {
		out = append(out, r.primary[name])
	}
	return out
}
