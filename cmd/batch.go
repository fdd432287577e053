package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/iksnae/termblog/internal"
	"github.com/iksnae/termblog/internal/tui"
	"github.com/mattn/go-isatty"
)

// batchRunner submits lines one by one and streams what each conversation
// prints. Output of a suspended handler shows up as later lines resume it.
type batchRunner struct {
	session  *internal.Session
	out      io.Writer
	render   *tui.Renderer
	user     string
	lastID   string
	lastSeen int
}

func newBatchRunner(s *internal.Session, out io.Writer) *batchRunner {
	view := s.Settings().View()
	theme := view.Theme
	if !writerIsTerminal(out) {
		theme = "notty"
	}
	return &batchRunner{
		session: s,
		out:     out,
		render:  tui.NewRenderer(80, theme),
		user:    view.User,
	}
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Submit runs one line and prints any new output
func (b *batchRunner) Submit(line string) error {
	if _, err := b.session.Submit(line); err != nil {
		if errors.Is(err, internal.ErrSessionClosed) {
			return err
		}
		internal.LogWarn("Line %q not run: %v", line, err)
	}
	b.flush()
	return nil
}

// Run submits every line from r
func (b *batchRunner) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := b.Submit(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func (b *batchRunner) flush() {
	conv, ok := b.session.Log().Last()
	if !ok {
		b.lastID, b.lastSeen = "", 0
		return
	}
	if conv.ID != b.lastID {
		b.lastID, b.lastSeen = conv.ID, 0
		fmt.Fprintln(b.out, b.render.Prompt(b.user, conv.Dir)+conv.Command)
	}
	for _, ev := range conv.Outputs[b.lastSeen:] {
		if out := b.render.Event(ev); out != "" {
			fmt.Fprintln(b.out, out)
		}
	}
	b.lastSeen = len(conv.Outputs)
}
