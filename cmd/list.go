package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/termblog/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded transcripts",
	Long:  `List the shell sessions recorded with --record, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		archive, err := openArchive()
		if err != nil {
			return err
		}
		index, err := archive.LoadIndex()
		if err != nil {
			return fmt.Errorf("failed to load transcript index: %w", err)
		}
		displayTranscripts(index, time.Now())
		return nil
	},
}

func displayTranscripts(index *internal.ArchiveIndex, now time.Time) {
	if len(index.Transcripts) == 0 {
		fmt.Println(headerStyle.Render("📋 No transcripts recorded"))
		fmt.Println(idStyle.Render("💡 Tip: run `termblog shell --record` to record one"))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("📋 Found %d transcript(s)", len(index.Transcripts))))
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("First command")+"\t"+titleStyle.Render("Commands")+"\t"+titleStyle.Render("Started")+"\t"+titleStyle.Render("User")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, entry := range index.Transcripts {
		first := entry.FirstCommand
		if first == "" {
			first = "(empty)"
		}
		if len(first) > 40 {
			first = first[:37] + "..."
		}

		user := entry.User
		if user == "" {
			user = "—"
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			idStyle.Render(shortID(entry.ID)),
			first,
			countStyle.Render(strconv.Itoa(entry.ConversationCount)),
			dateStyle.Render(relativeTime(entry.StartedAt, now)),
			userStyle.Render(user),
		)
	}

	_ = w.Flush()
	fmt.Println()
	fmt.Println(idStyle.Render("💡 Tip: Use the ID (e.g., ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(shortID(index.Transcripts[0].ID)) +
		idStyle.Render(") with `termblog show <id>`"))
}

// shortID returns the first 8 characters, enough for a prefix lookup
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func relativeTime(stamp string, now time.Time) string {
	if stamp == "" {
		return "—"
	}
	t, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		if len(stamp) > 10 {
			return stamp[:10]
		}
		return stamp
	}
	diff := now.Sub(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
