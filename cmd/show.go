package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/termblog/internal"
	"github.com/iksnae/termblog/internal/tui"
	"github.com/spf13/cobra"
)

var (
	limit int
)

var (
	// Styles for show command
	transcriptHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	transcriptMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <transcript-id>",
	Short: "Show a recorded transcript",
	Long: `Replay a recorded transcript as it appeared in the shell.

The ID may be shortened to any unique prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		archive, err := openArchive()
		if err != nil {
			return err
		}
		t, err := archive.Find(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		displayTranscriptHeader(out, t)

		convs := t.Conversations
		total := len(convs)
		if limit > 0 && limit < total {
			convs = convs[:limit]
		}

		theme := "notty"
		if writerIsTerminal(out) {
			theme = "dark"
		}
		r := tui.NewRenderer(100, theme)
		for _, conv := range convs {
			fmt.Fprintln(out, r.Conversation(conv, t.User))
			fmt.Fprintln(out)
		}

		if limit > 0 && limit < total {
			fmt.Fprintln(out, lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Italic(true).
				Render(fmt.Sprintf("... (%d more command(s))", total-limit)))
		}
		return nil
	},
}

func displayTranscriptHeader(w io.Writer, t *internal.Transcript) {
	fmt.Fprintln(w, transcriptHeaderStyle.Render(fmt.Sprintf("💬 %s", t.ID)))

	var meta []string
	if t.User != "" {
		meta = append(meta, fmt.Sprintf("User: %s", t.User))
	}
	if !t.StartedAt.IsZero() {
		meta = append(meta, fmt.Sprintf("Started: %s", t.StartedAt.Format("2006-01-02 15:04:05")))
	}
	meta = append(meta, fmt.Sprintf("Commands: %d", len(t.Conversations)))
	fmt.Fprintln(w, transcriptMetaStyle.Render(strings.Join(meta, " • ")))
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of commands to show")
}
