package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iksnae/termblog/internal"
)

const viHelp = "-- INSERT -- lines are appended. :w write, :q quit, :wq write and quit, :q! discard, :p print, :d N delete line N"

// vi is a line editor. It suspends the session for each line it reads.
func vi(ctx *internal.ExecContext, args []string) error {
	if len(args) == 0 {
		return &internal.UsageError{Usage: "vi <file>"}
	}
	name := args[0]
	readOnly := !ctx.Writable(name)

	body, err := ctx.ReadFile(name)
	switch {
	case err == nil:
	case errors.Is(err, internal.ErrNotFound) && !readOnly:
		body = ""
	default:
		return fileNotFound(name, err)
	}

	buf := splitLines(body)
	status := fmt.Sprintf("%q %d lines", name, len(buf))
	if readOnly {
		status += " [readonly]"
	}
	ctx.Info(status)
	printBuffer(ctx, buf)
	ctx.Help(viHelp)

	modified := false
	for {
		line, err := ctx.ReadLine()
		if err != nil {
			return err
		}

		cmd := strings.TrimSpace(line)
		if !strings.HasPrefix(cmd, ":") {
			buf = append(buf, line)
			modified = true
			continue
		}

		switch {
		case cmd == ":w" || cmd == ":wq":
			if readOnly {
				ctx.Error("E45: 'readonly' option is set (add ! to override)")
				continue
			}
			if !ctx.WriteFile(name, strings.Join(buf, "\n")) {
				ctx.Error(fmt.Sprintf("Failed to write %s, please retry.", name))
				continue
			}
			modified = false
			ctx.Success(fmt.Sprintf("%q %d lines written", name, len(buf)))
			if cmd == ":wq" {
				return nil
			}
		case cmd == ":q":
			if modified {
				ctx.Error("E37: No write since last change (add ! to override)")
				continue
			}
			return nil
		case cmd == ":q!":
			return nil
		case cmd == ":p":
			printBuffer(ctx, buf)
		case strings.HasPrefix(cmd, ":d"):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(cmd, ":d")))
			if err != nil || n < 1 || n > len(buf) {
				ctx.Error(fmt.Sprintf("Usage: :d <1-%d>", len(buf)))
				continue
			}
			buf = append(buf[:n-1], buf[n:]...)
			modified = true
		default:
			ctx.Error("E492: Not an editor command: " + strings.TrimPrefix(cmd, ":"))
		}
	}
}

func splitLines(body string) []string {
	body = strings.TrimSuffix(body, "\n")
	if body == "" {
		return nil
	}
	return strings.Split(body, "\n")
}

func printBuffer(ctx *internal.ExecContext, buf []string) {
	if len(buf) == 0 {
		ctx.Print("~")
		return
	}
	var sb strings.Builder
	for i, line := range buf {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%3d  %s", i+1, line)
	}
	ctx.Print(sb.String())
}
