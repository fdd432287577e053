// Package commands holds the built-in shell commands.
package commands

import (
	"github.com/iksnae/termblog/internal"
)

// Fonts are the font families the font command accepts
var Fonts = []string{
	"0xProto Nerd Font",
	"Fira Code",
	"Cascadia Code",
	"JetBrains Mono",
}

const (
	defaultFont     = "Cascadia Code"
	defaultFontSize = "18"
	minFontSize     = 1
	maxFontSize     = 26
)

// Builtins returns the built-in command table
func Builtins() []internal.Command {
	return []internal.Command{
		{
			Name:    "ls",
			Usage:   "ls [dir]",
			Summary: "List directory contents",
			Args:    internal.ArgSpec{Kind: internal.ArgDirs},
			Handler: internal.HandlerFunc(ls),
		},
		{
			Name:    "cd",
			Usage:   "cd <dir>",
			Summary: "Change directory",
			Args:    internal.ArgSpec{Kind: internal.ArgDirs},
			Handler: internal.HandlerFunc(cd),
		},
		{
			Name:    "pwd",
			Usage:   "pwd",
			Summary: "Print the current directory",
			Handler: internal.HandlerFunc(pwd),
		},
		{
			Name:    "cat",
			Aliases: []string{"view"},
			Usage:   "cat <file.md>",
			Summary: "Show a markdown file",
			Args:    internal.ArgSpec{Kind: internal.ArgFiles},
			Handler: internal.HandlerFunc(cat),
		},
		{
			Name:    "tree",
			Usage:   "tree",
			Summary: "Show the whole directory tree",
			Handler: internal.HandlerFunc(tree),
		},
		{
			Name:    "find",
			Usage:   "find <term>",
			Summary: "Search article names",
			Handler: internal.HandlerFunc(find),
		},
		{
			Name:    "wget",
			Usage:   "wget <file>",
			Summary: "Download a file",
			Args:    internal.ArgSpec{Kind: internal.ArgFiles},
			Handler: internal.HandlerFunc(wget),
		},
		{
			Name:    "vi",
			Usage:   "vi <file>",
			Summary: "Edit a file (config.toml)",
			Args:    internal.ArgSpec{Kind: internal.ArgFiles},
			Handler: internal.HandlerFunc(vi),
		},
		{
			Name:    "echo",
			Usage:   "echo <message>",
			Summary: "Print a message or a file",
			Args:    internal.ArgSpec{Kind: internal.ArgFiles},
			Handler: internal.HandlerFunc(echo),
		},
		{
			Name:    "help",
			Usage:   "help [-l | command]",
			Summary: "Show this help (-l for every command)",
			Args:    internal.ArgSpec{Kind: internal.ArgCommands, Vocabulary: internal.Words("-l")},
			Handler: internal.HandlerFunc(help),
		},
		{
			Name:    "clear",
			Usage:   "clear",
			Summary: "Clear the screen",
			Handler: internal.HandlerFunc(clearScreen),
		},
		{
			Name:    "history",
			Usage:   "history [-c]",
			Summary: "Show or clear command history",
			Args:    internal.ArgSpec{Vocabulary: internal.Words("-c")},
			Handler: internal.HandlerFunc(history),
		},
		{
			Name:    "size",
			Usage:   "size <1-26|default>",
			Summary: "Set the font size",
			Args:    internal.ArgSpec{Vocabulary: internal.Words("default")},
			Handler: internal.HandlerFunc(size),
		},
		{
			Name:    "font",
			Usage:   "font [name]",
			Summary: "Show or set the font",
			Args:    internal.ArgSpec{Vocabulary: internal.Words(append([]string{"default"}, Fonts...)...)},
			Handler: internal.HandlerFunc(font),
		},
		{
			Name:    "background",
			Usage:   "background <0-1> | background opacity <0-1> | background image <path>",
			Summary: "Show or set the background",
			Args:    internal.ArgSpec{Vocabulary: internal.Words("opacity", "image")},
			Handler: internal.HandlerFunc(background),
		},
		{
			Name:    "theme",
			Usage:   "theme [name] | theme read [name]",
			Summary: "Show or set the markdown theme",
			Args: internal.ArgSpec{Vocabulary: func(v internal.SettingsView) []string {
				return append(append([]string(nil), v.Themes...), "read")
			}},
			Handler: internal.HandlerFunc(theme),
		},
		{
			Name:    "test-config",
			Usage:   "test-config",
			Summary: "Show the loaded settings",
			Handler: internal.HandlerFunc(testConfig),
		},
		{
			Name:    "clear-config",
			Usage:   "clear-config",
			Summary: "Clear all settings and history",
			Handler: internal.HandlerFunc(clearConfig),
		},
	}
}

// Register adds the built-in commands to reg
func Register(reg *internal.Registry) error {
	for _, cmd := range Builtins() {
		if err := reg.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding the built-in commands
func NewRegistry() *internal.Registry {
	reg := internal.NewRegistry()
	reg.MustRegister(Builtins()...)
	return reg
}
