package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/termblog/internal"
)

var (
	promptUserStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	promptDirStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	commandStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	infoStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	dirStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	titleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	dateStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).Padding(0, 1)
)

// glamourStyles maps shell themes to glamour's standard styles. Unknown
// themes use the terminal's background.
var glamourStyles = map[string]string{
	"dark":      "dark",
	"dracula":   "dracula",
	"light":     "light",
	"solarized": "light",
	"notty":     "notty",
	"ascii":     "ascii",
}

// Renderer turns conversations into styled terminal text
type Renderer struct {
	width int
	theme string
	md    *glamour.TermRenderer
}

// NewRenderer creates a renderer wrapping at width for the given theme
func NewRenderer(width int, theme string) *Renderer {
	r := &Renderer{}
	r.configure(width, theme)
	return r
}

// Configure updates the wrap width and theme, rebuilding the markdown
// renderer only when either changed
func (r *Renderer) Configure(width int, theme string) {
	if width == r.width && theme == r.theme {
		return
	}
	r.configure(width, theme)
}

func (r *Renderer) configure(width int, theme string) {
	if width <= 0 {
		width = 80
	}
	r.width, r.theme = width, theme

	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(wrap)}
	if style, ok := glamourStyles[theme]; ok {
		opts = append(opts, glamour.WithStandardStyle(style))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}
	md, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		internal.LogWarn("Markdown renderer unavailable: %v", err)
		md = nil
	}
	r.md = md
}

// Prompt renders the shell prompt for user in dir
func (r *Renderer) Prompt(user, dir string) string {
	return promptUserStyle.Render(user+"@termblog") + ":" + promptDirStyle.Render(dir) + "$ "
}

// Conversation renders the command line and every output event
func (r *Renderer) Conversation(conv internal.Conversation, user string) string {
	var sb strings.Builder
	sb.WriteString(r.Prompt(user, conv.Dir))
	sb.WriteString(commandStyle.Render(conv.Command))
	for _, ev := range conv.Outputs {
		if out := r.Event(ev); out != "" {
			sb.WriteByte('\n')
			sb.WriteString(out)
		}
	}
	return sb.String()
}

// Event renders one output event
func (r *Renderer) Event(ev internal.OutputEvent) string {
	switch ev.Kind {
	case internal.OutputError:
		return errorStyle.Render(ev.Text)
	case internal.OutputSuccess:
		return successStyle.Render(ev.Text)
	case internal.OutputInfo, internal.OutputProgress:
		return infoStyle.Render(ev.Text)
	case internal.OutputHelp:
		return helpStyle.Render(ev.Text)
	case internal.OutputDir:
		return r.listing(ev.Entries)
	case internal.OutputMarkdown:
		if ev.Document == nil {
			return ""
		}
		return r.document(*ev.Document)
	default:
		return ev.Text
	}
}

func (r *Renderer) listing(entries []internal.DirEntry) string {
	if len(entries) == 0 {
		return dateStyle.Render("(empty)")
	}
	nameWidth := 0
	for _, e := range entries {
		if w := lipgloss.Width(e.Name); w > nameWidth {
			nameWidth = w
		}
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name
		pad := strings.Repeat(" ", nameWidth-lipgloss.Width(name))
		if e.IsDir {
			lines = append(lines, e.Icon+" "+dirStyle.Render(name+"/"))
			continue
		}
		line := e.Icon + " " + name
		if e.Date != "" {
			line += pad + "  " + dateStyle.Render(e.Date)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) document(doc internal.Document) string {
	header := titleStyle.Render(doc.Title)
	var meta []string
	if doc.Date != "" {
		meta = append(meta, doc.Date)
	}
	if doc.Category != "" {
		meta = append(meta, doc.Category)
	}
	if len(meta) > 0 {
		header += "  " + dateStyle.Render(strings.Join(meta, " · "))
	}

	body := doc.Body
	if r.md != nil {
		if out, err := r.md.Render(doc.Body); err == nil {
			body = strings.TrimRight(out, "\n")
		} else {
			internal.LogDebug("Rendering %s: %v", doc.Title, err)
		}
	}
	return header + "\n" + body
}

// Welcome renders the banner shown above the first conversation
func (r *Renderer) Welcome(v internal.SettingsView) string {
	title := v.WelcomeTitle
	if title == "" {
		title = "termblog"
	}
	lines := []string{headerStyle.Render(title)}
	if v.WelcomeMsg != "" {
		lines = append(lines, v.WelcomeMsg)
	}
	if v.HelpMsg != "" {
		lines = append(lines, helpStyle.Render(v.HelpMsg))
	}
	return strings.Join(lines, "\n")
}

// Transcript renders every conversation, separated by blank lines
func (r *Renderer) Transcript(convs []internal.Conversation, user string) string {
	parts := make([]string, 0, len(convs))
	for _, c := range convs {
		parts = append(parts, r.Conversation(c, user))
	}
	return strings.Join(parts, "\n\n")
}

// Candidates renders the open completion candidates with the current one
// highlighted
func (r *Renderer) Candidates(cands []string, cursor int) string {
	if len(cands) < 2 {
		return ""
	}
	parts := make([]string, len(cands))
	for i, c := range cands {
		if i == cursor {
			parts[i] = titleStyle.Render(c)
		} else {
			parts[i] = dateStyle.Render(c)
		}
	}
	return strings.Join(parts, "  ")
}
