package commands

import (
	"fmt"
	"strings"

	"github.com/iksnae/termblog/internal"
)

// shortHelp is the command list shown by a plain help
var shortHelp = []string{"ls", "cd", "cat", "tree", "help", "size", "font", "background", "wget", "vi"}

func help(ctx *internal.ExecContext, args []string) error {
	reg := ctx.Registry()

	if name := ctx.Arg(0, ""); name != "" && name != "-l" {
		cmd, ok := reg.Resolve(name)
		if !ok {
			return &internal.NotFoundError{What: "Command", Name: name}
		}
		text := fmt.Sprintf("Usage: %s\n\n  %s", cmd.Usage, cmd.Summary)
		if len(cmd.Aliases) > 0 {
			text += "\n  aliases: " + strings.Join(cmd.Aliases, ", ")
		}
		ctx.Help(text)
		return nil
	}

	var cmds []internal.Command
	if ctx.HasFlag("-l") {
		cmds = reg.Commands()
	} else {
		for _, name := range shortHelp {
			if cmd, ok := reg.Resolve(name); ok {
				cmds = append(cmds, cmd)
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("Usage: <command> [options]\n\nCommands:\n\n")
	for _, cmd := range cmds {
		usage := cmd.Usage
		if usage == "" || len(usage) > 24 {
			usage = cmd.Name
		}
		fmt.Fprintf(&sb, "  %-24s %s\n", usage, cmd.Summary)
	}
	if ctx.HasFlag("-l") {
		sb.WriteString("\nTip: press Tab after a command name to complete its argument")
	} else {
		sb.WriteString("\nTip: type 'help -l' to see every command")
	}
	ctx.Help(sb.String())
	return nil
}

func clearScreen(ctx *internal.ExecContext, args []string) error {
	ctx.ClearScreen()
	return nil
}

func history(ctx *internal.ExecContext, args []string) error {
	if ctx.HasFlag("-c") {
		if err := ctx.ClearHistory(); err != nil {
			return err
		}
		ctx.Success("History cleared")
		return nil
	}

	entries := ctx.History()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%4d  %s", i+1, e)
	}
	ctx.Print(strings.Join(lines, "\n"))
	return nil
}
